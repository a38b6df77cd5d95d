package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"ImmoGest/server/internal/appMiddleware"
	"ImmoGest/server/internal/db"
	"ImmoGest/server/internal/handlers"
	"ImmoGest/server/internal/mailer"
	"ImmoGest/server/internal/models"
	"ImmoGest/server/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	db.InitDB()

	store, err := storage.NewMinioStore(context.Background())
	if err != nil {
		log.Fatalf("Failed to init object storage: %v", err)
	}

	handlers.Setup(store, mailer.NewSMTPMailer())

	r := chi.NewRouter()

	r.Use(appMiddleware.CorsMiddleware)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/register", handlers.Register)
	r.Post("/login", handlers.Login)
	r.Post("/refresh", handlers.Refresh)
	r.Post("/applications", handlers.CreateApplication)

	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.AuthMiddleware)

		r.Get("/api/profile", handlers.GetProfile)
		r.Get("/api/users/search", handlers.SearchUsers)

		r.Post("/api/conversations", handlers.CreateConversation)
		r.Get("/api/conversations", handlers.GetConversations)
		r.Get("/api/conversations/{conversation_id}", handlers.GetConversationById)
		r.Post("/api/conversations/{conversation_id}/messages", handlers.SendMessage)
		r.Post("/api/conversations/{conversation_id}/read", handlers.MarkConversationRead)

		r.Post("/api/incidents", handlers.CreateIncident)
		r.Get("/api/incidents", handlers.GetIncidents)

		r.Get("/api/leases", handlers.GetMyLeases)
		r.Get("/api/payments", handlers.GetMyPayments)
		r.Get("/api/loyalty", handlers.GetLoyaltySummary)

		r.Post("/api/documents", handlers.UploadDocument)
		r.Get("/api/documents", handlers.GetMyDocuments)

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireRole(models.RoleAdmin))

			r.Post("/api/buildings", handlers.CreateBuilding)
			r.Get("/api/buildings", handlers.GetBuildings)
			r.Put("/api/buildings/{building_id}", handlers.UpdateBuilding)
			r.Delete("/api/buildings/{building_id}", handlers.DeleteBuilding)
			r.Post("/api/buildings/{building_id}/apartments", handlers.CreateApartment)
			r.Get("/api/buildings/{building_id}/apartments", handlers.GetApartments)
			r.Put("/api/apartments/{apartment_id}", handlers.UpdateApartment)
			r.Delete("/api/apartments/{apartment_id}", handlers.DeleteApartment)

			r.Post("/api/leases", handlers.CreateLease)
			r.Post("/api/leases/{lease_id}/end", handlers.EndLease)
			r.Get("/api/leases/{lease_id}/payments", handlers.GetLeasePayments)

			r.Post("/api/payments", handlers.SchedulePayment)
			r.Post("/api/payments/{payment_id}/record", handlers.RecordPayment)

			r.Patch("/api/incidents/{incident_id}", handlers.UpdateIncidentStatus)

			r.Get("/api/applications", handlers.GetApplications)
			r.Post("/api/applications/{application_id}/accept", handlers.AcceptApplication)
			r.Post("/api/applications/{application_id}/reject", handlers.RejectApplication)
		})
	})

	r.Get("/ws", handlers.WebSocketHandler)

	port := ":8080"
	srv := &http.Server{
		Addr:         port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server started on port %s\n", port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %s\n", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Stopping the server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %s\n", err)
	}
	log.Println("Server has been successfully stopped")
}

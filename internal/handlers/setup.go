package handlers

import (
	"encoding/json"
	"net/http"

	"ImmoGest/server/internal/mailer"
	"ImmoGest/server/internal/services"
	"ImmoGest/server/internal/storage"

	"github.com/jonboulle/clockwork"
)

var (
	userService         = services.NewUserService()
	conversationService services.ConversationService
	propertyService     = services.NewPropertyService()
	leaseService        = services.NewLeaseService(propertyService)
	incidentService     = services.NewIncidentService()
	paymentService      = services.NewPaymentService()
	loyaltyService      = services.NewLoyaltyService()
	documentService     = services.NewDocumentService()

	attachmentService  *services.AttachmentService
	applicationService *services.ApplicationService

	clock clockwork.Clock = clockwork.NewRealClock()
)

func init() {
	conversationService = services.NewConversationService(userService)
}

// Setup wires the handlers that depend on external collaborators. Called
// once from main after the collaborators are constructed.
func Setup(store storage.ObjectStore, sender mailer.Sender) {
	attachmentService = services.NewAttachmentService(store)
	applicationService = services.NewApplicationService(sender)
}

// writeJSON writes a JSON response. The header must be set before
// WriteHeader or the Content-Type is lost.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// currentUser pulls the authenticated user out of the request context.
func currentUser(r *http.Request) (int, string, bool) {
	userID, ok := r.Context().Value("user_id").(int)
	if !ok {
		return 0, "", false
	}
	role, _ := r.Context().Value("role").(string)
	return userID, role, true
}

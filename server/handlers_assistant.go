package server

import (
	"encoding/json"
	"net/http"

	"github.com/Daskott/raksha/server/assistant"
	"github.com/Daskott/raksha/server/models"
	"github.com/google/uuid"
)

// chat always answers with 200 once the caller is authenticated. A malformed body is treated
// as an empty message.
func (s *Server) chat(rw http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	data := ChatRequest{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		logg.Infof("chat: ignoring malformed body: %v", err)
		data = ChatRequest{}
	}

	prompt := assistant.Prompt{Message: data.Message}
	if entry, err := s.store.LastLocatedHistory(user.ID); err == nil && entry.Location.HasAddress() {
		prompt.LastKnownAddress = *entry.Location.Address
	}

	writeResponse(rw, ChatResponse{
		Response:  assistant.SafeReply(r.Context(), s.responder, prompt, logg),
		SessionID: uuid.NewString(),
	}, http.StatusOK)
}

func (s *Server) history(rw http.ResponseWriter, r *http.Request) {
	history, err := s.store.HistoryForUser(currentUser(r).ID, models.MAX_HISTORY_PER_USER)
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeResponse(rw, history, http.StatusOK)
}

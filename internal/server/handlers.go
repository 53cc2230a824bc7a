package server

import (
	"net/http"
	"time"

	"github.com/alexmenard/e2ee-api/internal/identity"
	"github.com/alexmenard/e2ee-api/internal/keys"
	"github.com/alexmenard/e2ee-api/internal/messaging"
	"github.com/alexmenard/e2ee-api/pkg/errors"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	DeviceID string `json:"device_id"`
}

type registerDeviceRequest struct {
	DeviceID    string `json:"device_id"`
	IdentityKey string `json:"identity_key"`
}

type signedPreKeyPayload struct {
	KeyID     int32  `json:"key_id"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

type oneTimePreKeyPayload struct {
	KeyID     int32  `json:"key_id"`
	PublicKey string `json:"public_key"`
}

type uploadKeysRequest struct {
	SignedPreKey   *signedPreKeyPayload   `json:"signed_prekey"`
	OneTimePreKeys []oneTimePreKeyPayload `json:"one_time_prekeys"`
}

type sendRequest struct {
	RecipientDeviceID string `json:"recipient_device_id"`
	Ciphertext        string `json:"ciphertext"`
}

type fanoutPayload struct {
	DeviceID   string `json:"device_id"`
	Ciphertext string `json:"ciphertext"`
}

type sendToUserRequest struct {
	RecipientUserUUID string          `json:"recipient_user_uuid"`
	Payloads          []fanoutPayload `json:"payloads"`
}

type ackRequest struct {
	IDs  []int64 `json:"ids"`
	Type string  `json:"type"`
}

type markReadRequest struct {
	UserUUID string `json:"user_uuid"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{
		"user_uuid": p.UserUUID,
		"device_id": p.DeviceID,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[registerRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	dto, err := s.identityUC.Register(r.Context(), identity.RegisterCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[loginRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	dto, err := s.identityUC.Login(r.Context(), identity.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
		DeviceID: req.DeviceID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[registerDeviceRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	p := principalFrom(r.Context())
	dto, err := s.identityUC.RegisterDevice(r.Context(), p.UserID, identity.RegisterDeviceCommand{
		DeviceID:    req.DeviceID,
		IdentityKey: req.IdentityKey,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (s *Server) handleUserDevices(w http.ResponseWriter, r *http.Request) {
	deviceIDs, err := s.identityUC.ListDevices(r.Context(), r.URL.Query().Get("user_uuid"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"devices": deviceIDs,
		"count":   len(deviceIDs),
	})
}

func (s *Server) handleUploadKeys(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[uploadKeysRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	cmd := keys.UploadKeysCommand{}
	if req.SignedPreKey != nil {
		cmd.SignedPreKey = &keys.SignedPreKeyUpload{
			KeyID:     req.SignedPreKey.KeyID,
			PublicKey: req.SignedPreKey.PublicKey,
			Signature: req.SignedPreKey.Signature,
		}
	}
	for _, otpk := range req.OneTimePreKeys {
		cmd.OneTimePreKeys = append(cmd.OneTimePreKeys, keys.OneTimePreKeyUpload{
			KeyID:     otpk.KeyID,
			PublicKey: otpk.PublicKey,
		})
	}

	p := principalFrom(r.Context())
	dto, err := s.keysUC.UploadKeys(r.Context(), p.DeviceID, cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	deviceID := r.URL.Query().Get("device_id")
	if deviceID == "" {
		writeError(w, errors.InvalidArg("device_id is required"))
		return
	}

	dto, err := s.keysUC.FetchBundle(r.Context(), deviceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleKeysStatus(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	dto, err := s.keysUC.Status(r.Context(), p.DeviceID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[sendRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	p := principalFrom(r.Context())
	dto, err := s.messagingUC.Send(r.Context(), p.UserID, p.DeviceID, messaging.SendCommand{
		RecipientDeviceID: req.RecipientDeviceID,
		Ciphertext:        req.Ciphertext,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (s *Server) handleSendToUser(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[sendToUserRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	cmd := messaging.SendToUserCommand{RecipientUserUUID: req.RecipientUserUUID}
	for _, payload := range req.Payloads {
		cmd.Payloads = append(cmd.Payloads, messaging.FanoutPayload{
			DeviceID:   payload.DeviceID,
			Ciphertext: payload.Ciphertext,
		})
	}

	p := principalFrom(r.Context())
	dto, err := s.messagingUC.SendToUser(r.Context(), p.UserID, p.DeviceID, cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	dto, err := s.messagingUC.Inbox(r.Context(), p.DeviceID,
		queryInt64(r, "after_id", 0), queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleMessagesWith(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	dto, err := s.messagingUC.Conversation(r.Context(), p.DeviceID,
		r.URL.Query().Get("device_id"),
		queryInt64(r, "after_id", 0), queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleMessagesWithUser(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	dto, err := s.conversationsUC.MessagesWithUser(r.Context(), p.UserID,
		r.URL.Query().Get("user_uuid"),
		queryInt64(r, "after_id", 0), queryInt(r, "limit", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleAck(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[ackRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	p := principalFrom(r.Context())
	dto, err := s.messagingUC.Ack(r.Context(), p.DeviceID, messaging.AckCommand{
		IDs:  req.IDs,
		Type: req.Type,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleConversations(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())
	dto, err := s.conversationsUC.List(r.Context(), p.UserID,
		queryInt(r, "limit", 0), queryInt64(r, "cursor", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleMarkConversationRead(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[markReadRequest](r)
	if err != nil {
		writeError(w, err)
		return
	}

	p := principalFrom(r.Context())
	dto, err := s.conversationsUC.MarkRead(r.Context(), p.UserID, req.UserUUID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

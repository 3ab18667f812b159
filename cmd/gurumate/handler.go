package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/gurumate/gurumate/internal/chat"
	"github.com/gurumate/gurumate/internal/dispatch"
	"github.com/gurumate/gurumate/internal/llm"
	"github.com/gurumate/gurumate/internal/state"
)

// AssistantHandler exposes the assistant core over HTTP: chat sessions,
// the persisted state, dashboard counts, the contact book, and the parent
// report deep-link preparation.
type AssistantHandler struct {
	registry   *chat.Registry
	dispatcher *dispatch.Dispatcher
}

func NewAssistantHandler(registry *chat.Registry, dispatcher *dispatch.Dispatcher) *AssistantHandler {
	return &AssistantHandler{registry: registry, dispatcher: dispatcher}
}

// chatRequest is one user turn. Attachment data arrives base64-encoded with
// its declared MIME type, exactly as a browser client would produce it.
type chatRequest struct {
	Message    string `json:"message"`
	Offline    bool   `json:"offline"`
	Attachment *struct {
		Name     string `json:"name"`
		MIMEType string `json:"mime_type"`
		Data     string `json:"data"`
	} `json:"attachment"`
}

func (h *AssistantHandler) HandleCreateSession(c *gin.Context) {
	s := h.registry.Create()
	c.JSON(http.StatusCreated, gin.H{
		"session_id": s.ID,
		"messages":   s.Messages(),
	})
}

func (h *AssistantHandler) HandleMessages(c *gin.Context) {
	s, ok := h.registry.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": s.Messages()})
}

func (h *AssistantHandler) HandleChat(c *gin.Context) {
	s, ok := h.registry.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	var att *llm.Attachment
	if req.Attachment != nil {
		data, err := base64.StdEncoding.DecodeString(req.Attachment.Data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "attachment data is not valid base64"})
			return
		}
		att = &llm.Attachment{
			Name:     req.Attachment.Name,
			MIMEType: req.Attachment.MIMEType,
			Data:     data,
		}
	}

	// The client reports its own connectivity, the same way the browser
	// app consulted navigator.onLine before submitting.
	s.SetOffline(req.Offline)

	result, err := s.Send(c.Request.Context(), req.Message, att)
	switch {
	case errors.Is(err, chat.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case errors.Is(err, chat.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":   result.Reply,
		"applied": result.Applied,
		"skipped": result.Skipped,
		"failed":  result.Failed,
		"state":   h.dispatcher.State(),
	})
}

func (h *AssistantHandler) HandleState(c *gin.Context) {
	c.JSON(http.StatusOK, h.dispatcher.State())
}

// HandleDashboard returns the per-list counts backing the stats cards.
func (h *AssistantHandler) HandleDashboard(c *gin.Context) {
	st := h.dispatcher.State()
	c.JSON(http.StatusOK, gin.H{
		"schedules":       len(st.Schedules),
		"grades":          len(st.Grades),
		"behaviorRecords": len(st.BehaviorRecords),
		"activities":      len(st.Activities),
		"reminders":       len(st.Reminders),
		"parentReports":   len(st.ParentReports),
		"contacts":        len(st.Contacts),
	})
}

func (h *AssistantHandler) HandleListContacts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"contacts": h.dispatcher.State().Contacts})
}

// HandleAddContact is the manual contact path. A duplicate phone number is
// an informational no-op, never an error.
func (h *AssistantHandler) HandleAddContact(c *gin.Context) {
	var contact state.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if contact.PhoneNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phoneNumber is required"})
		return
	}

	added := h.dispatcher.AddContact(c.Request.Context(), contact)
	resp := gin.H{"added": added}
	if !added {
		resp["note"] = "Nomor ini sudah ada dalam daftar kontak."
	}
	c.JSON(http.StatusOK, resp)
}

// HandleReportLink prepares the WhatsApp deep link for a drafted parent
// report. Only the payload is built; nothing is ever sent on the user's
// behalf.
func (h *AssistantHandler) HandleReportLink(c *gin.Context) {
	id := c.Param("id")
	for _, report := range h.dispatcher.State().ParentReports {
		if report.ID == id {
			c.JSON(http.StatusOK, gin.H{
				"url": fmt.Sprintf("https://wa.me/%s?text=%s",
					report.PhoneNumber, url.QueryEscape(report.Content)),
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
}

// HandleLogin records the simulated login profile.
func (h *AssistantHandler) HandleLogin(c *gin.Context) {
	var profile state.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	h.dispatcher.SetUser(c.Request.Context(), profile)
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// HandleLogout clears the persisted slot and forgets all live sessions.
func (h *AssistantHandler) HandleLogout(c *gin.Context) {
	if err := h.dispatcher.Reset(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	h.registry.DropAll()
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"platelog/models"
	"platelog/utils"
)

const entryTimeLayout = "Mon 2 Jan, 3:04 PM"

// MealLogService is the client side of the estimation flow: it derives the
// meal label, calls the estimator, folds the result into the session's day
// log and keeps the chat transcript in step. The hub is optional; when set,
// transcript lines and new entries are also pushed to connected sockets.
type MealLogService struct {
	est Estimator
	hub *RealtimeHub
}

func NewMealLogService(est Estimator, hub *RealtimeHub) *MealLogService {
	return &MealLogService{est: est, hub: hub}
}

// SubmitMeal runs one submission end to end. The user's message is recorded
// in the transcript before the outcome is known; the log entry is only
// created, in one step, on full success. Any failure leaves the day log
// untouched and surfaces as a transcript line plus the returned error.
func (s *MealLogService) SubmitMeal(ctx context.Context, sessionID string, session *Session, description, imageData string, referenceTime time.Time) (*models.MealEntry, error) {
	description = strings.TrimSpace(description)
	if description == "" && imageData == "" {
		return nil, newValidation("missing input")
	}
	if !session.beginSubmission() {
		return nil, newValidation("another submission is in progress")
	}

	question := description
	if question == "" {
		question = "[photo]"
	}
	s.say(sessionID, session, models.SpeakerUser, question)

	label := utils.MealLabelFor(referenceTime)
	est, err := s.est.Analyze(ctx, models.AnalyzeRequest{
		Message:     description,
		ImageBase64: imageData,
		MealLabel:   label,
	})
	if err != nil {
		session.endSubmission(true)
		if IsKind(err, KindCanceled) {
			s.say(sessionID, session, models.SpeakerAssistant, "Analysis canceled.")
		} else {
			s.say(sessionID, session, models.SpeakerAssistant, UserMessage(err))
		}
		return nil, err
	}

	title := est.MealTitle
	if title == "" {
		title = label
	}
	items := est.Items
	if items == nil {
		items = []models.MealItem{}
	}
	// The gateway-computed total wins; summing here is only the fallback
	// for a response that carried items but no total.
	macros := est.Total
	if macros.IsZero() {
		macros = models.SumItems(items)
	}

	entry := models.MealEntry{
		ID:         uuid.NewString(),
		Title:      title,
		Time:       referenceTime.Format(entryTimeLayout),
		Macros:     macros,
		Items:      items,
		Image:      imageData,
		Notes:      est.Notes,
		Confidence: est.Confidence,
	}

	date := session.EntryDate(referenceTime)
	session.AppendEntry(date, entry)
	session.endSubmission(false)

	s.say(sessionID, session, models.SpeakerAssistant, utils.SummarizeEntry(entry))
	if s.hub != nil {
		s.hub.Broadcast(sessionID, map[string]any{
			"kind":  "log.entry",
			"date":  date,
			"entry": entry,
		})
	}
	return &entry, nil
}

func (s *MealLogService) say(sessionID string, session *Session, speaker models.Speaker, text string) {
	msg := models.ChatMessage{Speaker: speaker, Text: text}
	session.AppendMessage(msg)
	if s.hub != nil {
		s.hub.Broadcast(sessionID, map[string]any{
			"kind":    "chat.message",
			"message": msg,
		})
	}
}

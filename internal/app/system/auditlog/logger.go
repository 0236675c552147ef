// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/opencircle/seekerhub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for authentication events (login, logout).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Auth string
	// Admin controls logging for back-office action events (record CRUD,
	// enrollments, pairings, benefits).
	// Values: "all" (MongoDB + zap), "db" (MongoDB only), "log" (zap only), "off" (disabled)
	Admin string
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via audit.Store) and structured logs (via zap).
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}

	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.SubjectID != nil {
		fields = append(fields, zap.String("subject_id", event.SubjectID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
// Logging destination is controlled by config: "all", "db", "log", or "off".
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}

	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}

	if setting == "all" || setting == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		ActorID:   &userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details: map[string]string{
			"email": email,
		},
	})
}

// LoginFailedUserNotFound logs a failed login due to user not found.
func (l *Logger) LoginFailedUserNotFound(ctx context.Context, r *http.Request, attemptedEmail string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedUserNotFound,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "user not found",
		Details: map[string]string{
			"attempted_email": attemptedEmail,
		},
	})
}

// LoginFailedWrongPassword logs a failed login due to wrong password.
func (l *Logger) LoginFailedWrongPassword(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedWrongPassword,
		ActorID:       &userID,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "wrong password",
		Details: map[string]string{
			"email": email,
		},
	})
}

// LoginFailedUserDisabled logs a failed login due to a disabled account.
func (l *Logger) LoginFailedUserDisabled(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventLoginFailedUserDisabled,
		ActorID:       &userID,
		IP:            getClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: "user disabled",
		Details: map[string]string{
			"email": email,
		},
	})
}

// Logout logs a user logout. Accepts the string ID from SessionUser.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userIDStr string) {
	var userID *primitive.ObjectID
	if oid, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
		userID = &oid
	}

	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		ActorID:   userID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
	})
}

// --- Back-Office Events ---

// adminEvent builds the common shape for staff actions on a record.
func (l *Logger) adminEvent(ctx context.Context, r *http.Request, eventType string, actorID, subjectID primitive.ObjectID, details map[string]string) {
	var actor *primitive.ObjectID
	if !actorID.IsZero() {
		actor = &actorID
	}
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   actor,
		SubjectID: &subjectID,
		IP:        getClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   details,
	})
}

// HumanCreated logs creation of a human record.
func (l *Logger) HumanCreated(ctx context.Context, r *http.Request, actorID, humanID primitive.ObjectID, fullName string) {
	l.adminEvent(ctx, r, audit.EventHumanCreated, actorID, humanID, map[string]string{
		"full_name": fullName,
	})
}

// HumanUpdated logs an edit to a human record.
func (l *Logger) HumanUpdated(ctx context.Context, r *http.Request, actorID, humanID primitive.ObjectID) {
	l.adminEvent(ctx, r, audit.EventHumanUpdated, actorID, humanID, nil)
}

// SeekerEnrolled logs promotion of a prospect to seeker.
func (l *Logger) SeekerEnrolled(ctx context.Context, r *http.Request, actorID, humanID primitive.ObjectID) {
	l.adminEvent(ctx, r, audit.EventSeekerEnrolled, actorID, humanID, nil)
}

// SeekerUpdated logs an edit to a seeker record.
func (l *Logger) SeekerUpdated(ctx context.Context, r *http.Request, actorID, humanID primitive.ObjectID) {
	l.adminEvent(ctx, r, audit.EventSeekerUpdated, actorID, humanID, nil)
}

// SeekerDowngraded logs a seeker being returned to prospect status.
func (l *Logger) SeekerDowngraded(ctx context.Context, r *http.Request, actorID, humanID primitive.ObjectID) {
	l.adminEvent(ctx, r, audit.EventSeekerDowngraded, actorID, humanID, nil)
}

// PartnerMarked logs a human being marked as a community partner.
func (l *Logger) PartnerMarked(ctx context.Context, r *http.Request, actorID, humanID primitive.ObjectID, organization string) {
	l.adminEvent(ctx, r, audit.EventPartnerMarked, actorID, humanID, map[string]string{
		"organization": organization,
	})
}

// PartnerUpdated logs an edit to a community partner record.
func (l *Logger) PartnerUpdated(ctx context.Context, r *http.Request, actorID, humanID primitive.ObjectID) {
	l.adminEvent(ctx, r, audit.EventPartnerUpdated, actorID, humanID, nil)
}

// PairingCreated logs creation of a seeker pairing.
func (l *Logger) PairingCreated(ctx context.Context, r *http.Request, actorID, pairingID primitive.ObjectID, leftID, rightID primitive.ObjectID) {
	l.adminEvent(ctx, r, audit.EventPairingCreated, actorID, pairingID, map[string]string{
		"left_id":  leftID.Hex(),
		"right_id": rightID.Hex(),
	})
}

// PairingEnded logs a pairing being closed out with an unpair date.
func (l *Logger) PairingEnded(ctx context.Context, r *http.Request, actorID, pairingID primitive.ObjectID) {
	l.adminEvent(ctx, r, audit.EventPairingEnded, actorID, pairingID, nil)
}

// NoteAdded logs a note being appended to a human record.
func (l *Logger) NoteAdded(ctx context.Context, r *http.Request, actorID, humanID primitive.ObjectID) {
	l.adminEvent(ctx, r, audit.EventNoteAdded, actorID, humanID, nil)
}

// MilestoneAdded logs a milestone being recorded for a seeker.
func (l *Logger) MilestoneAdded(ctx context.Context, r *http.Request, actorID, seekerID primitive.ObjectID, title string) {
	l.adminEvent(ctx, r, audit.EventMilestoneAdded, actorID, seekerID, map[string]string{
		"title": title,
	})
}

// BenefitRecorded logs a benefit disbursement.
func (l *Logger) BenefitRecorded(ctx context.Context, r *http.Request, actorID, benefitID primitive.ObjectID, seekerID primitive.ObjectID) {
	l.adminEvent(ctx, r, audit.EventBenefitRecorded, actorID, benefitID, map[string]string{
		"seeker_id": seekerID.Hex(),
	})
}

// BenefitTypeCreated logs creation of a benefit type.
func (l *Logger) BenefitTypeCreated(ctx context.Context, r *http.Request, actorID, typeID primitive.ObjectID, name string) {
	l.adminEvent(ctx, r, audit.EventBenefitTypeCreated, actorID, typeID, map[string]string{
		"name": name,
	})
}

// BenefitTypeUpdated logs an edit to a benefit type.
func (l *Logger) BenefitTypeUpdated(ctx context.Context, r *http.Request, actorID, typeID primitive.ObjectID) {
	l.adminEvent(ctx, r, audit.EventBenefitTypeUpdated, actorID, typeID, nil)
}

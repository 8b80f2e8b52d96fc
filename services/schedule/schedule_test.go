// File: services/schedule/schedule_test.go
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"mindhaven/models"
	"mindhaven/utils"
)

// fixedClock pins "now" for deterministic tests.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// fakeAvailabilityRepo is an in-memory AvailabilityRepository.
type fakeAvailabilityRepo struct {
	mu      sync.Mutex
	nextID  int
	windows []models.AvailabilityWindow
}

func (f *fakeAvailabilityRepo) ReplaceForDay(_ context.Context, therapistID, dayOfWeek, overrideDate string, windows []models.AvailabilityWindow) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.windows[:0]
	for _, w := range f.windows {
		if w.TherapistID != therapistID {
			kept = append(kept, w)
			continue
		}
		if overrideDate != "" {
			if w.OverrideDate != overrideDate {
				kept = append(kept, w)
			}
			continue
		}
		if w.OverrideDate != "" || w.DayOfWeek != dayOfWeek {
			kept = append(kept, w)
		}
	}
	f.windows = kept

	ids := make([]string, 0, len(windows))
	for _, w := range windows {
		if w.AvailabilityID == "" {
			f.nextID++
			w.AvailabilityID = fmt.Sprintf("avail-%d", f.nextID)
		}
		ids = append(ids, w.AvailabilityID)
		f.windows = append(f.windows, w)
	}
	return ids, nil
}

func (f *fakeAvailabilityRepo) ListByTherapist(_ context.Context, therapistID, dayOfWeek string) ([]models.AvailabilityWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		if w.TherapistID == therapistID && (dayOfWeek == "" || w.DayOfWeek == dayOfWeek) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListForDate(_ context.Context, therapistID, date string) ([]models.AvailabilityWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		if w.TherapistID == therapistID && w.OverrideDate == date {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListRecurring(_ context.Context, therapistID, dayOfWeek string) ([]models.AvailabilityWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		if w.TherapistID == therapistID && w.OverrideDate == "" && w.DayOfWeek == dayOfWeek {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) FindBookable(_ context.Context, therapistID, date, dayOfWeek, startTime string) (*models.AvailabilityWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hasOverride := false
	for i := range f.windows {
		w := f.windows[i]
		if w.TherapistID != therapistID || w.OverrideDate != date {
			continue
		}
		hasOverride = true
		if w.StartTime == startTime {
			return &w, nil
		}
	}
	if hasOverride {
		return nil, nil
	}
	for i := range f.windows {
		w := f.windows[i]
		if w.TherapistID == therapistID && w.OverrideDate == "" && w.DayOfWeek == dayOfWeek && w.StartTime == startTime {
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeAvailabilityRepo) ListOverrideDatesInRange(_ context.Context, therapistID, from, to string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]struct{}{}
	var out []string
	for _, w := range f.windows {
		d := w.OverrideDate
		if w.TherapistID != therapistID || d == "" || d < from || d >= to {
			continue
		}
		if _, dup := seen[d]; !dup {
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) ListRecurringDays(_ context.Context, therapistID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]struct{}{}
	var out []string
	for _, w := range f.windows {
		if w.TherapistID != therapistID || w.OverrideDate != "" {
			continue
		}
		if _, dup := seen[w.DayOfWeek]; !dup {
			seen[w.DayOfWeek] = struct{}{}
			out = append(out, w.DayOfWeek)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) DeleteByID(_ context.Context, availabilityID, therapistID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, w := range f.windows {
		if w.AvailabilityID == availabilityID && w.TherapistID == therapistID {
			f.windows = append(f.windows[:i], f.windows[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeAvailabilityRepo) UpdateTimes(_ context.Context, availabilityID, therapistID, startTime, endTime string, updatedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.windows {
		if f.windows[i].AvailabilityID == availabilityID && f.windows[i].TherapistID == therapistID {
			f.windows[i].StartTime = startTime
			f.windows[i].EndTime = endTime
			f.windows[i].UpdatedAt = updatedAt
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeAvailabilityRepo) EnsureIndexes(context.Context) error { return nil }

// fakeSessionRepo is an in-memory SessionRepository covering the queries the
// schedule service needs.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions []models.TherapySession
}

func (f *fakeSessionRepo) Insert(_ context.Context, session models.TherapySession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSessionRepo) find(match func(models.TherapySession) bool) *models.TherapySession {
	for i := range f.sessions {
		if match(f.sessions[i]) {
			s := f.sessions[i]
			return &s
		}
	}
	return nil
}

func (f *fakeSessionRepo) GetForTherapist(_ context.Context, sessionID, therapistID string) (*models.TherapySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.find(func(s models.TherapySession) bool {
		return s.SessionID == sessionID && s.TherapistID == therapistID
	}), nil
}

func (f *fakeSessionRepo) GetForClient(_ context.Context, sessionID, clientID string) (*models.TherapySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.find(func(s models.TherapySession) bool {
		return s.SessionID == sessionID && s.ClientID == clientID
	}), nil
}

func (f *fakeSessionRepo) FindScheduledAt(_ context.Context, therapistID string, at time.Time) (*models.TherapySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.find(func(s models.TherapySession) bool {
		return s.TherapistID == therapistID && s.Status == models.StatusScheduled && s.ScheduledAt.Equal(at)
	}), nil
}

func (f *fakeSessionRepo) ListBlockingForDay(_ context.Context, therapistID string, dayStart, dayEnd time.Time) ([]models.TherapySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TherapySession
	for _, s := range f.sessions {
		if s.TherapistID != therapistID {
			continue
		}
		inDay := s.ScheduledAt.IsZero() ||
			(!s.ScheduledAt.Before(dayStart) && !s.ScheduledAt.After(dayEnd))
		blocking := s.Status == models.StatusScheduled || s.Status == models.StatusCancelled
		if inDay && blocking {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListForTherapistDay(_ context.Context, therapistID string, dayStart, dayEnd time.Time) ([]models.TherapySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TherapySession
	for _, s := range f.sessions {
		if s.TherapistID == therapistID && !s.ScheduledAt.Before(dayStart) && !s.ScheduledAt.After(dayEnd) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByClient(_ context.Context, clientID string) ([]models.TherapySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TherapySession
	for _, s := range f.sessions {
		if s.ClientID == clientID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByTherapist(_ context.Context, therapistID string) ([]models.TherapySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TherapySession
	for _, s := range f.sessions {
		if s.TherapistID == therapistID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListBetween(_ context.Context, therapistID string, from, to time.Time) ([]models.TherapySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.TherapySession
	for _, s := range f.sessions {
		if s.TherapistID == therapistID && !s.ScheduledAt.Before(from) && s.ScheduledAt.Before(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) FindUpcomingForClient(_ context.Context, clientID string, after time.Time) (*models.TherapySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *models.TherapySession
	for i := range f.sessions {
		s := f.sessions[i]
		if s.ClientID != clientID || s.Status != models.StatusScheduled || s.ScheduledAt.Before(after) {
			continue
		}
		if best == nil || s.ScheduledAt.Before(best.ScheduledAt) {
			copied := s
			best = &copied
		}
	}
	return best, nil
}

func (f *fakeSessionRepo) FindOldestPendingRating(_ context.Context, clientID string) (*models.TherapySession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *models.TherapySession
	for i := range f.sessions {
		s := f.sessions[i]
		if s.ClientID != clientID || s.Status != models.StatusCompleted || s.UserRating != 0 {
			continue
		}
		if best == nil || s.ScheduledAt.Before(best.ScheduledAt) {
			copied := s
			best = &copied
		}
	}
	return best, nil
}

func (f *fakeSessionRepo) UpdateStatus(_ context.Context, sessionID, therapistID string, status models.SessionStatus, awaitingRating bool, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sessions {
		if f.sessions[i].SessionID == sessionID && f.sessions[i].TherapistID == therapistID {
			f.sessions[i].Status = status
			f.sessions[i].AwaitingRating = awaitingRating
			f.sessions[i].CompletedAt = now
			f.sessions[i].UpdatedAt = now
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeSessionRepo) MarkCancelled(_ context.Context, sessionID, clientID, reason string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sessions {
		if f.sessions[i].SessionID == sessionID && f.sessions[i].ClientID == clientID {
			f.sessions[i].Status = models.StatusCancelled
			f.sessions[i].CancellationReason = reason
			f.sessions[i].UpdatedAt = now
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeSessionRepo) MarkSlotReleased(_ context.Context, sessionID, therapistID string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sessions {
		if f.sessions[i].SessionID == sessionID && f.sessions[i].TherapistID == therapistID {
			f.sessions[i].SlotReleased = true
			f.sessions[i].UpdatedAt = now
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeSessionRepo) SetRating(_ context.Context, sessionID, clientID string, rating float64, feedback string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.sessions {
		if f.sessions[i].SessionID == sessionID && f.sessions[i].ClientID == clientID {
			f.sessions[i].UserRating = rating
			f.sessions[i].UserFeedback = feedback
			f.sessions[i].AwaitingRating = false
			f.sessions[i].RatedAt = now
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeSessionRepo) EnsureIndexes(context.Context) error { return nil }

// fakeDirectoryRepo resolves from fixed maps.
type fakeDirectoryRepo struct {
	therapists map[string]*models.TherapistProfile
	clients    map[string]*models.ClientProfile
}

func (f *fakeDirectoryRepo) ResolveTherapist(_ context.Context, therapistID string) (*models.TherapistProfile, error) {
	return f.therapists[therapistID], nil
}

func (f *fakeDirectoryRepo) ResolveClient(_ context.Context, clientID string) (*models.ClientProfile, error) {
	return f.clients[clientID], nil
}

func newTestService() (*DefaultScheduleService, *fakeAvailabilityRepo, *fakeSessionRepo) {
	avail := &fakeAvailabilityRepo{}
	sessions := &fakeSessionRepo{}
	dir := &fakeDirectoryRepo{
		therapists: map[string]*models.TherapistProfile{
			"t1": {
				UserID:             "t1",
				FirstName:          "Sarah",
				LastName:           "Chen",
				HourlyRate:         180,
				OfficeName:         "Calm Minds",
				OfficeAddress:      "12 Jalan Ampang",
				City:               "Kuala Lumpur",
				VerificationStatus: "approved",
			},
			"t2": {
				UserID:             "t2",
				FirstName:          "Pending",
				LastName:           "Person",
				HourlyRate:         90,
				VerificationStatus: "pending",
			},
		},
		clients: map[string]*models.ClientProfile{
			"c1": {UserID: "c1", FullName: "Amir Hassan", Email: "amir@example.com"},
		},
	}
	svc := &DefaultScheduleService{
		Availability: avail,
		Sessions:     sessions,
		Directory:    dir,
		Clock:        fixedClock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, utils.ClinicLocation())},
	}
	return svc, avail, sessions
}

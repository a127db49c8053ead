// Package inmem provides in-memory repository implementations used by
// tests. They mirror the Postgres contracts, including pgx.ErrNoRows for
// absent records. Ids are opaque strings here; the uuid column checks of
// the real store only apply to well-formed ids, so tests must use
// uuid-shaped values when probing absence.
package inmem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/clinic-kit/clinic-service/internal/domain"
	"github.com/clinic-kit/clinic-service/internal/repository"
)

// UserRepo is an in-memory repository.UserRepository.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

// NewUserRepo constructs an empty store.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]domain.User)}
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *UserRepo) GetByEmailAndRole(_ context.Context, email string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email && user.Role == role {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *UserRepo) GetByIDAndRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok || user.Role != role {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *UserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []domain.User
	for _, user := range r.users {
		if user.Role == role {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (r *UserRepo) DeleteByIDAndRole(_ context.Context, id string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok || user.Role != role {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

// Delete removes an account regardless of role. Tests use it to simulate
// deactivation between token issuance and the next request.
func (r *UserRepo) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// AppointmentRepo is an in-memory repository.AppointmentRepository. It
// resolves participant names against the user store, like the SQL joins do.
type AppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]domain.Appointment
	users        *UserRepo
}

// NewAppointmentRepo constructs an empty store backed by users for joins.
func NewAppointmentRepo(users *UserRepo) *AppointmentRepo {
	return &AppointmentRepo{appointments: make(map[string]domain.Appointment), users: users}
}

func (r *AppointmentRepo) Create(_ context.Context, appt *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt.ID = uuid.NewString()
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	r.appointments[appt.ID] = *appt
	return nil
}

func (r *AppointmentRepo) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appointments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &appt, nil
}

func (r *AppointmentRepo) GetByIDForDoctor(_ context.Context, id, doctorID string) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appointments[id]
	if !ok || appt.DoctorID != doctorID {
		return nil, pgx.ErrNoRows
	}
	return &appt, nil
}

func (r *AppointmentRepo) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appointments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	appt.Status = status
	appt.UpdatedAt = time.Now()
	// Re-key with the stored ID, not the caller's id: map overwrites replace
	// string keys, and handler-provided ids alias fiber's reused buffers.
	r.appointments[appt.ID] = appt
	return nil
}

func (r *AppointmentRepo) UpdateStatusForDoctor(_ context.Context, id, doctorID string, status domain.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appointments[id]
	if !ok || appt.DoctorID != doctorID {
		return pgx.ErrNoRows
	}
	appt.Status = status
	appt.UpdatedAt = time.Now()
	r.appointments[appt.ID] = appt
	return nil
}

func (r *AppointmentRepo) summarize(appt domain.Appointment) domain.AppointmentSummary {
	s := domain.AppointmentSummary{
		ID:        appt.ID,
		PatientID: appt.PatientID,
		DoctorID:  appt.DoctorID,
		Date:      appt.Date,
		TimeSlot:  appt.TimeSlot,
		Status:    appt.Status,
	}
	if patient, err := r.users.GetByID(context.Background(), appt.PatientID); err == nil {
		s.PatientName = patient.Name
	}
	if doctor, err := r.users.GetByID(context.Background(), appt.DoctorID); err == nil {
		s.DoctorName = doctor.Name
	}
	return s
}

func (r *AppointmentRepo) list(filter func(domain.Appointment) bool) []domain.AppointmentSummary {
	r.mu.Lock()
	appointments := make([]domain.Appointment, 0, len(r.appointments))
	for _, appt := range r.appointments {
		if filter(appt) {
			appointments = append(appointments, appt)
		}
	}
	r.mu.Unlock()

	sort.Slice(appointments, func(i, j int) bool { return appointments[i].Date.Before(appointments[j].Date) })
	summaries := make([]domain.AppointmentSummary, 0, len(appointments))
	for _, appt := range appointments {
		summaries = append(summaries, r.summarize(appt))
	}
	return summaries
}

func (r *AppointmentRepo) ListAll(_ context.Context) ([]domain.AppointmentSummary, error) {
	return r.list(func(domain.Appointment) bool { return true }), nil
}

func (r *AppointmentRepo) ListByDoctor(_ context.Context, doctorID string) ([]domain.AppointmentSummary, error) {
	return r.list(func(a domain.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (r *AppointmentRepo) ListByPatient(_ context.Context, patientID string) ([]domain.AppointmentSummary, error) {
	return r.list(func(a domain.Appointment) bool { return a.PatientID == patientID }), nil
}

func (r *AppointmentRepo) ListPatientsByDoctor(_ context.Context, doctorID string) ([]domain.PatientContact, error) {
	seen := make(map[string]struct{})
	var patients []domain.PatientContact
	for _, s := range r.list(func(a domain.Appointment) bool { return a.DoctorID == doctorID }) {
		if _, ok := seen[s.PatientID]; ok {
			continue
		}
		seen[s.PatientID] = struct{}{}
		contact := domain.PatientContact{ID: s.PatientID, Name: s.PatientName}
		if patient, err := r.users.GetByID(context.Background(), s.PatientID); err == nil {
			contact.Email = patient.Email
			contact.Phone = patient.Phone
		}
		patients = append(patients, contact)
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].Name < patients[j].Name })
	return patients, nil
}

// ReminderRepo is an in-memory repository.ReminderRepository.
type ReminderRepo struct {
	mu        sync.Mutex
	reminders map[string]domain.Reminder
}

// NewReminderRepo constructs an empty store.
func NewReminderRepo() *ReminderRepo {
	return &ReminderRepo{reminders: make(map[string]domain.Reminder)}
}

func (r *ReminderRepo) Create(_ context.Context, reminder *domain.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reminder.ID = uuid.NewString()
	reminder.IsDone = false
	reminder.CreatedAt = time.Now()
	reminder.UpdatedAt = reminder.CreatedAt
	r.reminders[reminder.ID] = *reminder
	return nil
}

func (r *ReminderRepo) ListOpenByDoctor(_ context.Context, doctorID string) ([]domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var reminders []domain.Reminder
	for _, rem := range r.reminders {
		if rem.DoctorID == doctorID && !rem.IsDone {
			reminders = append(reminders, rem)
		}
	}
	sort.Slice(reminders, func(i, j int) bool { return reminders[i].Date.Before(reminders[j].Date) })
	return reminders, nil
}

func (r *ReminderRepo) MarkDone(_ context.Context, id, doctorID string) (*domain.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.reminders[id]
	if !ok || rem.DoctorID != doctorID {
		return nil, pgx.ErrNoRows
	}
	rem.IsDone = true
	rem.UpdatedAt = time.Now()
	r.reminders[rem.ID] = rem
	return &rem, nil
}

func (r *ReminderRepo) Delete(_ context.Context, id, doctorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.reminders[id]
	if !ok || rem.DoctorID != doctorID {
		return pgx.ErrNoRows
	}
	delete(r.reminders, id)
	return nil
}

// PrescriptionRepo is an in-memory repository.PrescriptionRepository.
type PrescriptionRepo struct {
	mu            sync.Mutex
	prescriptions []domain.Prescription
	users         *UserRepo
}

// NewPrescriptionRepo constructs an empty store backed by users for joins.
func NewPrescriptionRepo(users *UserRepo) *PrescriptionRepo {
	return &PrescriptionRepo{users: users}
}

// Add seeds a prescription; there is no write path through the HTTP API.
func (r *PrescriptionRepo) Add(p domain.Prescription) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.prescriptions = append(r.prescriptions, p)
}

func (r *PrescriptionRepo) ListByPatient(_ context.Context, patientID string) ([]domain.PrescriptionSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var summaries []domain.PrescriptionSummary
	for _, p := range r.prescriptions {
		if p.PatientID != patientID {
			continue
		}
		s := domain.PrescriptionSummary{ID: p.ID, Date: p.Date, Details: p.Details}
		if doctor, err := r.users.GetByID(context.Background(), p.DoctorID); err == nil {
			s.DoctorName = doctor.Name
		}
		summaries = append(summaries, s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Date.After(summaries[j].Date) })
	return summaries, nil
}

// FeedbackRepo is an in-memory repository.FeedbackRepository.
type FeedbackRepo struct {
	mu        sync.Mutex
	feedbacks []domain.Feedback
}

// NewFeedbackRepo constructs an empty store.
func NewFeedbackRepo() *FeedbackRepo {
	return &FeedbackRepo{}
}

func (r *FeedbackRepo) Create(_ context.Context, feedback *domain.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	feedback.ID = uuid.NewString()
	feedback.CreatedAt = time.Now()
	r.feedbacks = append(r.feedbacks, *feedback)
	return nil
}

func (r *FeedbackRepo) ListRecent(_ context.Context, limit int) ([]domain.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	feedbacks := make([]domain.Feedback, len(r.feedbacks))
	copy(feedbacks, r.feedbacks)
	sort.Slice(feedbacks, func(i, j int) bool { return feedbacks[i].CreatedAt.After(feedbacks[j].CreatedAt) })
	if len(feedbacks) > limit {
		feedbacks = feedbacks[:limit]
	}
	return feedbacks, nil
}

// CallbackRepo is an in-memory repository.CallbackRepository.
type CallbackRepo struct {
	mu        sync.Mutex
	callbacks map[string]domain.CallbackRequest
}

// NewCallbackRepo constructs an empty store.
func NewCallbackRepo() *CallbackRepo {
	return &CallbackRepo{callbacks: make(map[string]domain.CallbackRequest)}
}

func (r *CallbackRepo) Create(_ context.Context, cb *domain.CallbackRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cb.ID = uuid.NewString()
	cb.Contacted = false
	cb.CreatedAt = time.Now()
	cb.UpdatedAt = cb.CreatedAt
	r.callbacks[cb.ID] = *cb
	return nil
}

func (r *CallbackRepo) List(_ context.Context) ([]domain.CallbackRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	callbacks := make([]domain.CallbackRequest, 0, len(r.callbacks))
	for _, cb := range r.callbacks {
		callbacks = append(callbacks, cb)
	}
	sort.Slice(callbacks, func(i, j int) bool { return callbacks[i].CreatedAt.After(callbacks[j].CreatedAt) })
	return callbacks, nil
}

func (r *CallbackRepo) MarkContacted(_ context.Context, id string) (*domain.CallbackRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cb, ok := r.callbacks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cb.Contacted = true
	cb.UpdatedAt = time.Now()
	r.callbacks[cb.ID] = cb
	return &cb, nil
}

func (r *CallbackRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.callbacks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.callbacks, id)
	return nil
}

// OTPStore is an in-memory repository.OTPStore with wall-clock expiry.
type OTPStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	codes map[string]otpEntry
}

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// NewOTPStore constructs an empty store with the given TTL.
func NewOTPStore(ttl time.Duration) *OTPStore {
	return &OTPStore{ttl: ttl, codes: make(map[string]otpEntry)}
}

func (s *OTPStore) Save(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[strings.ToLower(email)] = otpEntry{code: code, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *OTPStore) Get(_ context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.codes[strings.ToLower(email)]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", repository.ErrOTPNotFound
	}
	return entry.code, nil
}

func (s *OTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, strings.ToLower(email))
	return nil
}

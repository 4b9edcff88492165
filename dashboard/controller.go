package dashboard

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-aware/aggregate"
	"go-aware/mapview"
	"go-aware/risk"
	"go-aware/types"
)

// State is the top-level dashboard lifecycle.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateLoading         State = "loading"
	StateReady           State = "ready"
)

// ErrBadCredentials deliberately does not distinguish an unknown user from a
// wrong password; the credential pair is shared and fixed.
var ErrBadCredentials = errors.New("invalid username or password")

// ErrDeleteInFlight is returned when a delete for the same report ID has not
// resolved yet.
var ErrDeleteInFlight = errors.New("delete already in progress for this report")

var ErrNotAuthenticated = errors.New("not logged in")

// Store is the slice of the report store the controller drives.
type Store interface {
	CreateFieldReport(ctx context.Context, report types.FieldReport) (string, error)
	CreateEmergencyReport(ctx context.Context, report types.EmergencyReport) (string, error)
	ListFieldReports(ctx context.Context) ([]types.FieldReport, error)
	ListEmergencyReports(ctx context.Context) ([]types.EmergencyReport, error)
	DeleteFieldReport(ctx context.Context, id string) error
	DeleteEmergencyReport(ctx context.Context, id string) error
}

// Credentials is the shared credential pair officials log in with.
type Credentials struct {
	Username string
	Password string
}

// SubViews are the orthogonal Ready-state toggles. Several may be visible at
// once; they are not mutually exclusive.
type SubViews struct {
	TableVisible      bool   `json:"tableVisible"`
	DetailReportID    string `json:"detailReportId,omitempty"`
	ArchiveVisible    bool   `json:"archiveVisible"`
	ArchiveIndex      int    `json:"archiveIndex"`
	EmergencyDetailID string `json:"emergencyDetailId,omitempty"`
}

// Snapshot is the full derived view state handed to the HTTP layer.
type Snapshot struct {
	State       State                   `json:"state"`
	LastError   string                  `json:"lastError,omitempty"`
	Reports     []types.AnnotatedReport `json:"reports"`
	Emergencies []types.EmergencyReport `json:"emergencies"`
	Summary     types.DashboardSummary  `json:"summary"`
	Map         mapview.View            `json:"map"`
	Views       SubViews                `json:"views"`
}

// Controller owns the dashboard application state: the cached report array,
// everything derived from it, and the view toggles. It is constructed at
// startup and reset on logout; there are no package-level caches.
type Controller struct {
	mu    sync.Mutex
	store Store
	creds Credentials

	state     State
	lastError string
	views     SubViews

	reports     []types.AnnotatedReport
	emergencies []types.EmergencyReport
	summary     types.DashboardSummary
	mapView     mapview.View

	deletingReports     map[string]bool
	deletingEmergencies map[string]bool
	history             History

	online func() bool
	now    func() time.Time
}

func NewController(store Store, creds Credentials) *Controller {
	return &Controller{
		store:               store,
		creds:               creds,
		state:               StateUnauthenticated,
		deletingReports:     make(map[string]bool),
		deletingEmergencies: make(map[string]bool),
		online:              func() bool { return true },
		now:                 time.Now,
		mapView:             mapview.Build(nil),
	}
}

// SetConnectivityProbe overrides offline detection. The probe runs at submit
// time; a false result short-circuits the store write entirely.
func (c *Controller) SetConnectivityProbe(probe func() bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.online = probe
}

// Login checks the shared secret pair and, on success, loads the report set.
// A store read failure still lands in Ready: empty lists plus a dismissible
// error, so the rest of the dashboard stays usable.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	c.mu.Lock()
	if username != c.creds.Username || password != c.creds.Password {
		c.mu.Unlock()
		return ErrBadCredentials
	}
	c.state = StateLoading
	store := c.store
	c.mu.Unlock()

	reports, reportsErr := store.ListFieldReports(ctx)
	emergencies, emergenciesErr := store.ListEmergencyReports(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateReady
	c.lastError = ""
	if reportsErr != nil || emergenciesErr != nil {
		if reportsErr != nil {
			log.Printf("Loading field reports failed: %v", reportsErr)
			c.lastError = "Could not load reports. Showing an empty dashboard."
			reports = nil
		}
		if emergenciesErr != nil {
			log.Printf("Loading emergency reports failed: %v", emergenciesErr)
			if c.lastError == "" {
				c.lastError = "Could not load emergency requests."
			}
			emergencies = nil
		}
	}

	c.reports = risk.AnnotateAll(reports)
	c.emergencies = emergencies
	c.views = SubViews{TableVisible: true}
	c.rederiveLocked()
	return nil
}

// Logout tears the session state down to the initial object.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateUnauthenticated
	c.lastError = ""
	c.reports = nil
	c.emergencies = nil
	c.summary = types.DashboardSummary{}
	c.mapView = mapview.Build(nil)
	c.views = SubViews{}
	c.deletingReports = make(map[string]bool)
	c.deletingEmergencies = make(map[string]bool)
}

// Submit creates a field report. Offline submissions never touch the store:
// the report is queued locally as Pending sync. A rejected write keeps the
// report in history as Failed rather than dropping it.
func (c *Controller) Submit(ctx context.Context, report types.FieldReport) (types.FieldReport, error) {
	report.ID = uuid.NewString()
	report.Symptoms = types.NormalizeSymptoms(report.Symptoms)

	c.mu.Lock()
	probe := c.online
	c.mu.Unlock()

	// The probe runs outside the lock; a slow check must not stall readers.
	online := probe()

	c.mu.Lock()
	report.Timestamp = c.now()
	report.SyncStatus = types.SyncPending
	c.history.Push(report)
	if !online {
		c.mu.Unlock()
		return report, nil
	}
	localID := report.ID
	store := c.store
	c.mu.Unlock()

	canonicalID, err := store.CreateFieldReport(ctx, report)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.history.Resolve(localID, types.SyncFailed, "")
		report.SyncStatus = types.SyncFailed
		return report, err
	}
	c.history.Resolve(localID, types.SyncDone, canonicalID)
	report.ID = canonicalID
	report.SyncStatus = types.SyncDone
	return report, nil
}

// SubmitEmergency creates an emergency request. No local history is kept for
// these; the write either lands or the caller retries.
func (c *Controller) SubmitEmergency(ctx context.Context, report types.EmergencyReport) (string, error) {
	return c.store.CreateEmergencyReport(ctx, report)
}

// History returns the local submission cache, newest first.
func (c *Controller) History() []types.FieldReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Entries()
}

// DeleteReport removes a report from the store, then from local state. The
// local array is only mutated after the store confirms, so a failure leaves
// the report visible. Concurrent deletes of the same ID are rejected;
// different IDs may proceed in parallel.
func (c *Controller) DeleteReport(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.state != StateReady {
		c.mu.Unlock()
		return ErrNotAuthenticated
	}
	if c.deletingReports[id] {
		c.mu.Unlock()
		return ErrDeleteInFlight
	}
	c.deletingReports[id] = true
	store := c.store
	c.mu.Unlock()

	err := store.DeleteFieldReport(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.deletingReports, id)
	if err != nil {
		log.Printf("Delete rejected for report %s: %v", id, err)
		return err
	}

	before := len(c.reports)
	kept := c.reports[:0]
	for _, r := range c.reports {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	c.reports = kept
	if c.views.DetailReportID == id {
		c.views.DetailReportID = ""
	}
	if len(c.reports) != before {
		c.views.ArchiveIndex = 0
	}
	c.rederiveLocked()
	return nil
}

// DeleteEmergency removes an emergency request, same confirm-then-mutate
// ordering as DeleteReport.
func (c *Controller) DeleteEmergency(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.state != StateReady {
		c.mu.Unlock()
		return ErrNotAuthenticated
	}
	if c.deletingEmergencies[id] {
		c.mu.Unlock()
		return ErrDeleteInFlight
	}
	c.deletingEmergencies[id] = true
	store := c.store
	c.mu.Unlock()

	err := store.DeleteEmergencyReport(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.deletingEmergencies, id)
	if err != nil {
		log.Printf("Delete rejected for emergency %s: %v", id, err)
		return err
	}

	kept := c.emergencies[:0]
	for _, e := range c.emergencies {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	c.emergencies = kept
	if c.views.EmergencyDetailID == id {
		c.views.EmergencyDetailID = ""
	}
	c.rederiveLocked()
	return nil
}

// ArchiveNext advances the archive cursor, wrapping past the last report.
func (c *Controller) ArchiveNext() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.reports) == 0 {
		c.views.ArchiveIndex = 0
		return 0
	}
	c.views.ArchiveIndex = (c.views.ArchiveIndex + 1) % len(c.reports)
	return c.views.ArchiveIndex
}

// ArchivePrev steps the archive cursor back, wrapping before the first.
func (c *Controller) ArchivePrev() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.reports) == 0 {
		c.views.ArchiveIndex = 0
		return 0
	}
	c.views.ArchiveIndex = (c.views.ArchiveIndex - 1 + len(c.reports)) % len(c.reports)
	return c.views.ArchiveIndex
}

// ShowDetail opens a report's detail view. Orthogonal to the other toggles.
func (c *Controller) ShowDetail(reportID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views.DetailReportID = reportID
}

func (c *Controller) HideDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views.DetailReportID = ""
}

func (c *Controller) ShowEmergencyDetail(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views.EmergencyDetailID = id
}

func (c *Controller) HideEmergencyDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views.EmergencyDetailID = ""
}

func (c *Controller) SetArchiveVisible(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views.ArchiveVisible = visible
}

func (c *Controller) SetTableVisible(visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views.TableVisible = visible
}

// DismissError clears the error banner without retrying anything.
func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastError = ""
}

// Report looks up a cached annotated report by ID.
func (c *Controller) Report(id string) (types.AnnotatedReport, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.reports {
		if r.ID == id {
			return r, true
		}
	}
	return types.AnnotatedReport{}, false
}

// Emergency looks up a cached emergency request by ID.
func (c *Controller) Emergency(id string) (types.EmergencyReport, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.emergencies {
		if e.ID == id {
			return e, true
		}
	}
	return types.EmergencyReport{}, false
}

// Snapshot returns the current derived state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	reports := make([]types.AnnotatedReport, len(c.reports))
	copy(reports, c.reports)
	emergencies := make([]types.EmergencyReport, len(c.emergencies))
	copy(emergencies, c.emergencies)

	return Snapshot{
		State:       c.state,
		LastError:   c.lastError,
		Reports:     reports,
		Emergencies: emergencies,
		Summary:     c.summary,
		Map:         c.mapView,
		Views:       c.views,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// rederiveLocked recomputes everything downstream of the report array:
// summary, map markers, and the archive cursor clamp. Callers hold c.mu.
func (c *Controller) rederiveLocked() {
	c.summary = aggregate.Summarize(c.reports, c.emergencies, c.now())
	c.mapView = mapview.Build(c.reports)

	if len(c.reports) == 0 {
		c.views.ArchiveIndex = 0
	} else if c.views.ArchiveIndex >= len(c.reports) {
		c.views.ArchiveIndex = len(c.reports) - 1
	}
}

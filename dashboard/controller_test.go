package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go-aware/types"
)

type fakeStore struct {
	mu            sync.Mutex
	reports       []types.FieldReport
	emergencies   []types.EmergencyReport
	listErr       error
	createErr     error
	deleteErr     error
	createCalls   int
	deleteGate    chan struct{} // when set, DeleteFieldReport blocks until closed
	deleteStarted chan struct{} // signaled when DeleteFieldReport is entered
	nextID        int
}

func (f *fakeStore) CreateFieldReport(ctx context.Context, report types.FieldReport) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextID++
	id := fmt.Sprintf("srv-%d", f.nextID)
	report.ID = id
	f.reports = append(f.reports, report)
	return id, nil
}

func (f *fakeStore) CreateEmergencyReport(ctx context.Context, report types.EmergencyReport) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextID++
	return fmt.Sprintf("em-%d", f.nextID), nil
}

func (f *fakeStore) ListFieldReports(ctx context.Context) ([]types.FieldReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]types.FieldReport, len(f.reports))
	copy(out, f.reports)
	return out, nil
}

func (f *fakeStore) ListEmergencyReports(ctx context.Context) ([]types.EmergencyReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]types.EmergencyReport, len(f.emergencies))
	copy(out, f.emergencies)
	return out, nil
}

func (f *fakeStore) DeleteFieldReport(ctx context.Context, id string) error {
	if f.deleteStarted != nil {
		f.deleteStarted <- struct{}{}
	}
	if f.deleteGate != nil {
		<-f.deleteGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.reports[:0]
	for _, r := range f.reports {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.reports = kept
	return nil
}

func (f *fakeStore) DeleteEmergencyReport(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteErr
}

var testCreds = Credentials{Username: "official", Password: "aware2024"}

func readyController(t *testing.T, store *fakeStore) *Controller {
	t.Helper()
	c := NewController(store, testCreds)
	if err := c.Login(context.Background(), testCreds.Username, testCreds.Password); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return c
}

func seededStore(ids ...string) *fakeStore {
	store := &fakeStore{}
	for _, id := range ids {
		store.reports = append(store.reports, types.FieldReport{
			ID: id, Village: "V-" + id, PeopleCount: 5, Timestamp: time.Now(),
		})
	}
	return store
}

func TestLoginBadCredentials(t *testing.T) {
	c := NewController(&fakeStore{}, testCreds)

	for _, attempt := range [][2]string{
		{"official", "wrong"},
		{"stranger", "aware2024"},
		{"", ""},
	} {
		err := c.Login(context.Background(), attempt[0], attempt[1])
		if !errors.Is(err, ErrBadCredentials) {
			t.Errorf("Login(%q, %q) = %v, want ErrBadCredentials", attempt[0], attempt[1], err)
		}
	}
	if c.State() != StateUnauthenticated {
		t.Errorf("state = %s, want unauthenticated after failed logins", c.State())
	}
}

func TestLoginLoadsAndAnnotates(t *testing.T) {
	store := seededStore("r1", "r2")
	store.reports[0].Symptoms = []string{"Diarrhoea"}
	store.reports[0].WaterDirty = true
	store.reports[0].PeopleCount = 25

	c := readyController(t, store)
	snap := c.Snapshot()

	if snap.State != StateReady {
		t.Fatalf("state = %s, want ready", snap.State)
	}
	if len(snap.Reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(snap.Reports))
	}
	if snap.Reports[0].Risk != types.RiskHigh {
		t.Errorf("r1 risk = %s, want High", snap.Reports[0].Risk)
	}
	if !snap.Views.TableVisible {
		t.Error("table view should open on login")
	}
}

func TestLoginStoreReadFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.New("unavailable")}
	c := NewController(store, testCreds)

	if err := c.Login(context.Background(), testCreds.Username, testCreds.Password); err != nil {
		t.Fatalf("login should succeed despite read failure, got %v", err)
	}

	snap := c.Snapshot()
	if snap.State != StateReady {
		t.Errorf("state = %s, want ready-with-error", snap.State)
	}
	if snap.LastError == "" {
		t.Error("expected a visible error banner")
	}
	if len(snap.Reports) != 0 {
		t.Errorf("expected empty report list, got %d", len(snap.Reports))
	}

	// Banner is dismissible without a retry.
	c.DismissError()
	if c.Snapshot().LastError != "" {
		t.Error("DismissError did not clear the banner")
	}
}

func TestDeleteRemovesExactlyOneAndRederives(t *testing.T) {
	store := seededStore("r1", "r2", "r3")
	c := readyController(t, store)

	if err := c.DeleteReport(context.Background(), "r2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	snap := c.Snapshot()
	if len(snap.Reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(snap.Reports))
	}
	for _, r := range snap.Reports {
		if r.ID == "r2" {
			t.Error("r2 still present after delete")
		}
	}
	if snap.Summary.NewReportsToday != 2 {
		t.Errorf("summary not recomputed: NewReportsToday = %d, want 2", snap.Summary.NewReportsToday)
	}
	if snap.Views.ArchiveIndex != 0 {
		t.Errorf("archive index = %d, want reset to 0 after count change", snap.Views.ArchiveIndex)
	}
}

func TestDeleteFailureLeavesReportVisible(t *testing.T) {
	store := seededStore("r1", "r2")
	store.deleteErr = errors.New("permission denied")
	c := readyController(t, store)

	if err := c.DeleteReport(context.Background(), "r1"); err == nil {
		t.Fatal("expected delete error")
	}
	if len(c.Snapshot().Reports) != 2 {
		t.Error("report removed locally despite store rejection")
	}
}

func TestDeleteInFlightGuard(t *testing.T) {
	store := seededStore("r1")
	store.deleteGate = make(chan struct{})
	c := readyController(t, store)

	store.deleteStarted = make(chan struct{}, 2)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- c.DeleteReport(context.Background(), "r1")
	}()

	// Wait for the first delete to park inside the store call, then probe.
	select {
	case <-store.deleteStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("first delete never reached the store")
	}
	if err := c.DeleteReport(context.Background(), "r1"); !errors.Is(err, ErrDeleteInFlight) {
		t.Fatalf("concurrent delete = %v, want ErrDeleteInFlight", err)
	}

	close(store.deleteGate)
	if err := <-firstDone; err != nil {
		t.Fatalf("first delete failed: %v", err)
	}

	// Guard released after resolution.
	if err := c.DeleteReport(context.Background(), "r1"); errors.Is(err, ErrDeleteInFlight) {
		t.Error("guard not released after delete resolved")
	}
}

func TestDeleteGuardsArePerCollection(t *testing.T) {
	store := seededStore("shared")
	store.emergencies = []types.EmergencyReport{{ID: "shared", WaterBody: "Village pond"}}
	store.deleteGate = make(chan struct{})
	store.deleteStarted = make(chan struct{}, 1)
	c := readyController(t, store)

	reportDone := make(chan error, 1)
	go func() {
		reportDone <- c.DeleteReport(context.Background(), "shared")
	}()

	select {
	case <-store.deleteStarted:
	case <-time.After(2 * time.Second):
		t.Fatal("report delete never reached the store")
	}

	// An emergency that happens to share the ID must not be blocked.
	if err := c.DeleteEmergency(context.Background(), "shared"); err != nil {
		t.Fatalf("emergency delete blocked by in-flight report delete: %v", err)
	}

	close(store.deleteGate)
	if err := <-reportDone; err != nil {
		t.Fatalf("report delete failed: %v", err)
	}
}

func TestSlowConnectivityProbeDoesNotBlockReads(t *testing.T) {
	store := &fakeStore{}
	c := readyController(t, store)

	entered := make(chan struct{})
	release := make(chan struct{})
	c.SetConnectivityProbe(func() bool {
		close(entered)
		<-release
		return true
	})

	submitDone := make(chan struct{})
	go func() {
		c.Submit(context.Background(), types.FieldReport{Village: "Jorhat"})
		close(submitDone)
	}()

	<-entered

	snapDone := make(chan Snapshot, 1)
	go func() { snapDone <- c.Snapshot() }()
	select {
	case <-snapDone:
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot blocked behind the connectivity probe")
	}

	close(release)
	<-submitDone
}

func TestArchiveNavigationWrapsAndClamps(t *testing.T) {
	store := seededStore("r1", "r2", "r3")
	c := readyController(t, store)

	if got := c.ArchiveNext(); got != 1 {
		t.Errorf("next = %d, want 1", got)
	}
	if got := c.ArchiveNext(); got != 2 {
		t.Errorf("next = %d, want 2", got)
	}
	if got := c.ArchiveNext(); got != 0 {
		t.Errorf("next should wrap to 0, got %d", got)
	}
	if got := c.ArchivePrev(); got != 2 {
		t.Errorf("prev should wrap to 2, got %d", got)
	}

	// Cursor sits at 2; deleting shrinks the list and resets it.
	if err := c.DeleteReport(context.Background(), "r3"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if idx := c.Snapshot().Views.ArchiveIndex; idx != 0 {
		t.Errorf("archive index = %d, want 0 after delete", idx)
	}

	// Index never leaves [0, count-1] under any delete sequence.
	for _, id := range []string{"r1", "r2"} {
		c.ArchiveNext()
		if err := c.DeleteReport(context.Background(), id); err != nil {
			t.Fatalf("delete %s failed: %v", id, err)
		}
		idx := c.Snapshot().Views.ArchiveIndex
		count := len(c.Snapshot().Reports)
		if count == 0 {
			if idx != 0 {
				t.Errorf("empty list archive index = %d, want 0", idx)
			}
		} else if idx < 0 || idx >= count {
			t.Errorf("archive index %d out of bounds for %d reports", idx, count)
		}
	}
}

func TestSubmitOffline(t *testing.T) {
	store := &fakeStore{}
	c := readyController(t, store)
	c.SetConnectivityProbe(func() bool { return false })

	report, err := c.Submit(context.Background(), types.FieldReport{Village: "Majuli", PeopleCount: 4})
	if err != nil {
		t.Fatalf("offline submit should not error: %v", err)
	}
	if report.SyncStatus != types.SyncPending {
		t.Errorf("status = %s, want Pending sync", report.SyncStatus)
	}
	if store.createCalls != 0 {
		t.Errorf("store write attempted while offline: %d calls", store.createCalls)
	}

	history := c.History()
	if len(history) != 1 || history[0].Village != "Majuli" {
		t.Fatalf("report not at head of history: %+v", history)
	}
	if history[0].SyncStatus != types.SyncPending {
		t.Errorf("history status = %s, want Pending sync", history[0].SyncStatus)
	}
}

func TestSubmitStoreRejection(t *testing.T) {
	store := &fakeStore{createErr: errors.New("permission denied")}
	c := readyController(t, store)

	report, err := c.Submit(context.Background(), types.FieldReport{Village: "Dhemaji"})
	if err == nil {
		t.Fatal("expected submit error")
	}
	if report.SyncStatus != types.SyncFailed {
		t.Errorf("status = %s, want Failed", report.SyncStatus)
	}

	history := c.History()
	if len(history) != 1 {
		t.Fatal("failed report discarded from history")
	}
	if history[0].SyncStatus != types.SyncFailed {
		t.Errorf("history status = %s, want Failed", history[0].SyncStatus)
	}
}

func TestSubmitSuccessAssignsCanonicalID(t *testing.T) {
	store := &fakeStore{}
	c := readyController(t, store)

	report, err := c.Submit(context.Background(), types.FieldReport{Village: "Sadiya"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if report.SyncStatus != types.SyncDone {
		t.Errorf("status = %s, want Synced", report.SyncStatus)
	}
	if report.ID != "srv-1" {
		t.Errorf("id = %s, want store-assigned srv-1", report.ID)
	}
	if got := c.History()[0]; got.ID != "srv-1" || got.SyncStatus != types.SyncDone {
		t.Errorf("history entry = %+v, want synced with canonical id", got)
	}
}

func TestHistoryCapFIFO(t *testing.T) {
	store := &fakeStore{}
	c := readyController(t, store)
	c.SetConnectivityProbe(func() bool { return false })

	for i := 0; i < 45; i++ {
		if _, err := c.Submit(context.Background(), types.FieldReport{Village: fmt.Sprintf("v%02d", i)}); err != nil {
			t.Fatalf("submit %d failed: %v", i, err)
		}
	}

	history := c.History()
	if len(history) != 30 {
		t.Fatalf("history length = %d, want 30", len(history))
	}
	if history[0].Village != "v44" {
		t.Errorf("head = %s, want newest v44", history[0].Village)
	}
	if history[29].Village != "v15" {
		t.Errorf("tail = %s, want v15 (v00-v14 evicted oldest-first)", history[29].Village)
	}
}

func TestViewTogglesAreOrthogonal(t *testing.T) {
	store := seededStore("r1", "r2")
	c := readyController(t, store)

	c.ShowDetail("r1")
	c.SetArchiveVisible(true)
	c.ShowEmergencyDetail("e9")

	views := c.Snapshot().Views
	if !views.TableVisible || views.DetailReportID != "r1" || !views.ArchiveVisible || views.EmergencyDetailID != "e9" {
		t.Errorf("toggles are not independent: %+v", views)
	}

	c.HideDetail()
	views = c.Snapshot().Views
	if views.DetailReportID != "" || !views.ArchiveVisible {
		t.Errorf("hiding detail disturbed other toggles: %+v", views)
	}
}

func TestLogoutTearsDownState(t *testing.T) {
	store := seededStore("r1")
	c := readyController(t, store)
	c.ShowDetail("r1")

	c.Logout()
	snap := c.Snapshot()
	if snap.State != StateUnauthenticated {
		t.Errorf("state = %s, want unauthenticated", snap.State)
	}
	if len(snap.Reports) != 0 || snap.Views.DetailReportID != "" {
		t.Error("session state survived logout")
	}
	if err := c.DeleteReport(context.Background(), "r1"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("delete after logout = %v, want ErrNotAuthenticated", err)
	}
}

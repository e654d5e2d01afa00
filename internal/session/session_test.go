package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hat-costing/internal/service/ledger"
	"hat-costing/internal/storage"
)

func readOnly(st *State) {}

func editForm(st *State) {
	form := storage.DefaultForm()
	form.ProductName = "버킷햇"
	st.SetForm(form)
}

func serve(m *Manager, cookie *http.Cookie, handle func(st *State)) (*State, *http.Cookie) {
	var got *State
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
		handle(got)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/form", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var issued *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == m.CookieName() {
			issued = c
		}
	}
	return got, issued
}

func TestMiddleware_FreshStateIsNotStored(t *testing.T) {
	m := NewManager("costing_session", time.Hour, false, 0)

	st, cookie := serve(m, nil, readOnly)
	require.NotNil(t, st)
	assert.Nil(t, cookie)
	assert.Equal(t, 0, m.Len())

	form, materials := st.Snapshot()
	assert.Equal(t, storage.DefaultForm(), form)
	assert.Equal(t, storage.DefaultMaterials(), materials)
}

func TestMiddleware_RejectedRequestsDoNotGrowStore(t *testing.T) {
	m := NewManager("costing_session", time.Hour, false, 0)

	for i := 0; i < 500; i++ {
		st, cookie := serve(m, nil, readOnly)
		require.NotNil(t, st)
		require.Nil(t, cookie)
	}

	assert.Equal(t, 0, m.Len())
}

func TestMiddleware_EditIssuesCookie(t *testing.T) {
	m := NewManager("costing_session", time.Hour, false, 0)

	st, cookie := serve(m, nil, editForm)
	require.NotNil(t, cookie)

	assert.Equal(t, st.ID, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 1, m.Len())
}

func TestMiddleware_LoginIssuesCookie(t *testing.T) {
	m := NewManager("costing_session", time.Hour, false, 0)

	_, cookie := serve(m, nil, func(st *State) { st.SetAuthorized(true) })
	require.NotNil(t, cookie)
	assert.Equal(t, 1, m.Len())
}

func TestMiddleware_CookieWithoutWrite(t *testing.T) {
	m := NewManager("costing_session", time.Hour, false, 0)

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).UpdateLedger(func(l *ledger.Ledger) {
			l.Append(storage.ScrapEntry{ProductName: "A"})
		})
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/scraps", nil))

	assert.Len(t, rr.Result().Cookies(), 1)
	assert.Equal(t, 1, m.Len())
}

func TestMiddleware_SameCookieSameState(t *testing.T) {
	m := NewManager("costing_session", time.Hour, false, 0)

	first, cookie := serve(m, nil, editForm)
	second, _ := serve(m, cookie, readOnly)

	assert.Same(t, first, second)
	assert.Equal(t, 1, m.Len())
}

func TestMiddleware_SessionsAreIsolated(t *testing.T) {
	m := NewManager("costing_session", time.Hour, false, 0)

	a, _ := serve(m, nil, editForm)
	b, _ := serve(m, nil, editForm)
	require.NotEqual(t, a.ID, b.ID)

	a.UpdateLedger(func(l *ledger.Ledger) {
		l.Append(storage.ScrapEntry{ProductName: "A"})
	})
	a.SetAuthorized(true)

	_ = b.WithLedger(func(l *ledger.Ledger) error {
		assert.Equal(t, 0, l.Len())
		return nil
	})
	assert.False(t, b.Authorized())
}

func TestMiddleware_UnknownCookieStartsFresh(t *testing.T) {
	m := NewManager("costing_session", time.Hour, false, 0)

	st, cookie := serve(m, &http.Cookie{Name: "costing_session", Value: "forged"}, editForm)
	assert.NotEqual(t, "forged", st.ID)
	require.NotNil(t, cookie)
	assert.Equal(t, st.ID, cookie.Value)
}

func TestManager_ExpiredCookieStartsFresh(t *testing.T) {
	m := NewManager("costing_session", time.Minute, false, 0)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	old, cookie := serve(m, nil, editForm)

	now = now.Add(2 * time.Minute)
	fresh, _ := serve(m, cookie, readOnly)

	assert.NotEqual(t, old.ID, fresh.ID)
	assert.Equal(t, 0, m.Len())
}

func TestManager_Sweep(t *testing.T) {
	m := NewManager("costing_session", time.Minute, false, 0)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	serve(m, nil, editForm)
	now = now.Add(30 * time.Second)
	_, recent := serve(m, nil, editForm)
	require.Equal(t, 2, m.Len())

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())

	st, _ := serve(m, recent, readOnly)
	assert.Equal(t, recent.Value, st.ID)
}

func TestManager_SweepDoesNotWaitOnBusySession(t *testing.T) {
	m := NewManager("costing_session", time.Minute, false, 0)

	busy, _ := serve(m, nil, editForm)

	// пока экспорт держит сессию, очистка и чужие запросы идут дальше
	_ = busy.WithLedger(func(l *ledger.Ledger) error {
		done := make(chan struct{})
		go func() {
			m.Sweep()
			serve(m, nil, readOnly)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("sweep blocked on a locked session")
		}
		return nil
	})
}

func TestManager_CapEvictsLeastRecentlySeen(t *testing.T) {
	m := NewManager("costing_session", time.Hour, false, 2)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	first, firstCookie := serve(m, nil, editForm)
	now = now.Add(time.Minute)
	_, secondCookie := serve(m, nil, editForm)
	now = now.Add(time.Minute)
	serve(m, nil, editForm)

	assert.Equal(t, 2, m.Len())

	again, _ := serve(m, firstCookie, readOnly)
	assert.NotEqual(t, first.ID, again.ID)

	second, _ := serve(m, secondCookie, readOnly)
	assert.Equal(t, secondCookie.Value, second.ID)
}

func TestManager_RunStopsWithContext(t *testing.T) {
	m := NewManager("costing_session", time.Minute, false, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx, 10*time.Millisecond) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestState_SnapshotIsACopy(t *testing.T) {
	st := NewState("id")
	_, materials := st.Snapshot()
	materials[0].UnitPrice = 1

	_, again := st.Snapshot()
	assert.Equal(t, 4500.0, again[0].UnitPrice)
}

func TestFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, FromContext(req.Context()))
}

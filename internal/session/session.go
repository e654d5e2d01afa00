package session

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"hat-costing/internal/service/ledger"
	"hat-costing/internal/storage"
)

// State is everything one user has entered in one browser session.
// Nothing in it is shared with other sessions.
type State struct {
	ID string

	mu         sync.Mutex
	authorized bool
	retained   bool
	form       storage.Form
	materials  []storage.MaterialLine
	ledger     *ledger.Ledger

	// unix nano; читается при очистке без s.mu
	lastSeen atomic.Int64
}

func NewState(id string) *State {
	return &State{
		ID:        id,
		form:      storage.DefaultForm(),
		materials: storage.DefaultMaterials(),
		ledger:    ledger.New(),
	}
}

func (s *State) Authorized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authorized
}

func (s *State) SetAuthorized(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized = v
	if v {
		s.retained = true
	}
}

// Retained reports whether the state holds anything worth a cookie:
// a passed gate or a user edit.
func (s *State) Retained() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.retained
}

// Snapshot returns copies of the current form and BOM table.
func (s *State) Snapshot() (storage.Form, []storage.MaterialLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form, cloneMaterials(s.materials)
}

func (s *State) SetForm(f storage.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
	s.retained = true
}

func (s *State) SetMaterials(lines []storage.MaterialLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials = cloneMaterials(lines)
	s.retained = true
}

// WithLedger runs fn while holding the session lock.
func (s *State) WithLedger(fn func(l *ledger.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.ledger)
}

// UpdateLedger is WithLedger for changes: the state becomes retained.
func (s *State) UpdateLedger(fn func(l *ledger.Ledger)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ledger)
	s.retained = true
}

func (s *State) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *State) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

func cloneMaterials(lines []storage.MaterialLine) []storage.MaterialLine {
	out := make([]storage.MaterialLine, len(lines))
	copy(out, lines)
	return out
}

// Manager keeps retained session states in memory keyed by a cookie value.
// A request without a known cookie gets a throwaway state; it is stored and
// the cookie is issued only once the state is retained.
type Manager struct {
	mu          sync.Mutex
	states      map[string]*State
	cookieName  string
	ttl         time.Duration
	secure      bool
	maxSessions int
	now         func() time.Time
}

// NewManager builds a manager. maxSessions <= 0 means no cap.
func NewManager(cookieName string, ttl time.Duration, secure bool, maxSessions int) *Manager {
	return &Manager{
		states:      make(map[string]*State),
		cookieName:  cookieName,
		ttl:         ttl,
		secure:      secure,
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// Len reports the number of stored sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}

// Load returns the state bound to the request cookie or a fresh, unstored one.
func (m *Manager) Load(r *http.Request) *State {
	now := m.now()

	if cookie, err := r.Cookie(m.cookieName); err == nil {
		m.mu.Lock()
		st, ok := m.states[cookie.Value]
		if ok && m.expired(st, now) {
			delete(m.states, cookie.Value)
			ok = false
		}
		m.mu.Unlock()

		if ok {
			st.touch(now)
			return st
		}
	}

	st := NewState(uuid.NewString())
	st.touch(now)
	return st
}

// keep stores st if it is retained. At the cap idle states are swept first,
// then the least recently seen one is evicted.
func (m *Manager) keep(st *State) bool {
	if !st.Retained() {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.states[st.ID]; ok {
		return true
	}

	if m.maxSessions > 0 && len(m.states) >= m.maxSessions {
		now := m.now()
		m.sweepLocked(now)
		if len(m.states) >= m.maxSessions {
			m.evictOldestLocked(now)
		}
	}

	m.states[st.ID] = st
	return true
}

// Sweep drops states idle for longer than ttl and returns how many went.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked(m.now())
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 || m.ttl <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Sweep()
		}
	}
}

func (m *Manager) expired(st *State, now time.Time) bool {
	return m.ttl > 0 && st.idleSince(now) > m.ttl
}

func (m *Manager) sweepLocked(now time.Time) int {
	removed := 0
	for id, st := range m.states {
		if m.expired(st, now) {
			delete(m.states, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) evictOldestLocked(now time.Time) {
	var (
		oldestID string
		oldest   time.Duration = -1
	)
	for id, st := range m.states {
		if idle := st.idleSince(now); idle > oldest {
			oldest, oldestID = idle, id
		}
	}
	if oldestID != "" {
		delete(m.states, oldestID)
	}
}

func (m *Manager) writeCookie(w http.ResponseWriter, st *State) {
	cookie := &http.Cookie{
		Name:     m.cookieName,
		Value:    st.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if m.ttl > 0 {
		cookie.Expires = m.now().Add(m.ttl)
	}
	http.SetCookie(w, cookie)
}

// Middleware binds a State to every request. The cookie goes out with the
// response headers, so it is decided right before the first write.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := m.Load(r)

		cw := &cookieWriter{ResponseWriter: w}
		cw.commit = func() {
			if m.keep(st) {
				m.writeCookie(w, st)
			}
		}

		next.ServeHTTP(cw, r.WithContext(WithState(r.Context(), st)))

		// обработчик мог ничего не записать
		cw.beforeWrite()
	})
}

type cookieWriter struct {
	http.ResponseWriter
	commit    func()
	committed bool
}

func (w *cookieWriter) beforeWrite() {
	if w.committed {
		return
	}
	w.committed = true
	w.commit()
}

func (w *cookieWriter) WriteHeader(code int) {
	w.beforeWrite()
	w.ResponseWriter.WriteHeader(code)
}

func (w *cookieWriter) Write(b []byte) (int, error) {
	w.beforeWrite()
	return w.ResponseWriter.Write(b)
}

func (w *cookieWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

type ctxKey struct{}

func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, st)
}

// FromContext returns nil when no session middleware ran.
func FromContext(ctx context.Context) *State {
	st, _ := ctx.Value(ctxKey{}).(*State)
	return st
}

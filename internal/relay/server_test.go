package relay

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/wordris/internal/multiplayer"
	"github.com/vovakirdan/wordris/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Store, *multiplayer.Matchmaker) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "relay.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	reg := multiplayer.NewSessionRegistry()
	mm := multiplayer.NewMatchmaker(multiplayer.DefaultMatchmakerConfig(), reg)
	mm.SetResultSaver(store)
	mm.Start()
	t.Cleanup(mm.Stop)

	logger := log.New(io.Discard)
	return New(mm, reg, store, logger), store, mm
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected %d", rec.Code, http.StatusOK)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != `{"ok":true}` {
		t.Errorf("body = %s, expected {\"ok\":true}", body)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, expected JSON", ct)
	}
}

func TestNotFound(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusNotFound)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] != "not_found" || body["path"] != "/nope" {
		t.Errorf("body = %v, expected not_found for /nope", body)
	}
}

func TestScores(t *testing.T) {
	s, store, _ := newTestServer(t)

	for _, score := range []int{30, 120, 60} {
		if _, err := store.SaveScore("wordris", "animals", score, score/30); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.RecordMatchedWords("wordris", []string{"CAT", "DOG", "CAT"}); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scores/wordris?limit=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		Game   string      `json:"game"`
		Scores []scoreJSON `json:"scores"`
		Words  []wordJSON  `json:"words"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if len(resp.Scores) != 2 || resp.Scores[0].Score != 120 || resp.Scores[1].Score != 60 {
		t.Errorf("Scores = %+v, expected [120 60]", resp.Scores)
	}
	if len(resp.Words) != 2 || resp.Words[0].Word != "CAT" || resp.Words[0].Count != 2 {
		t.Errorf("Words = %+v, expected CAT first with 2", resp.Words)
	}

	rec = httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scores/unknown", nil))
	if !strings.Contains(rec.Body.String(), `"scores":[]`) {
		t.Errorf("empty game body = %s, expected an empty scores list", rec.Body.String())
	}
}

func TestRaces(t *testing.T) {
	s, store, _ := newTestServer(t)

	for _, r := range []storage.RaceResult{
		{RaceID: "r1", PackID: "animals", Player1: "s1", Player2: "s2", Score1: 30, Score2: 60, WinnerSession: "s2", EndReason: "completed"},
		{RaceID: "r2", PackID: "colors", Player1: "s3", Player2: "s4", EndReason: "left", WinnerSession: "s4"},
	} {
		if _, err := store.SaveRace(r); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		url      string
		expected int
	}{
		{"/races", 2},
		{"/races?limit=1", 1},
		{"/races?session=s1", 1},
		{"/races?session=nobody", 0},
	}
	for _, tc := range tests {
		rec := httptest.NewRecorder()
		s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.url, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, expected %d", tc.url, rec.Code, http.StatusOK)
		}
		var races []raceJSON
		if err := json.Unmarshal(rec.Body.Bytes(), &races); err != nil {
			t.Fatalf("%s: body is not JSON: %v", tc.url, err)
		}
		if len(races) != tc.expected {
			t.Errorf("%s: got %d races, expected %d", tc.url, len(races), tc.expected)
		}
	}
}

func TestScoresWithoutStore(t *testing.T) {
	reg := multiplayer.NewSessionRegistry()
	s := New(multiplayer.NewMatchmaker(multiplayer.DefaultMatchmakerConfig(), reg), reg, nil, nil)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scores/wordris", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, expected %d", rec.Code, http.StatusServiceUnavailable)
	}
}

type client struct {
	t  *testing.T
	ws *websocket.Conn
}

func dial(t *testing.T, srv *httptest.Server, name string) *client {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?name=" + name
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return &client{t: t, ws: ws}
}

func (c *client) send(typ string, p any) {
	c.t.Helper()
	raw, err := json.Marshal(p)
	if err != nil {
		c.t.Fatal(err)
	}
	msg, _ := json.Marshal(InMsg{T: typ, P: raw})
	if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		c.t.Fatalf("WriteMessage() failed: %v", err)
	}
}

// expect reads the next envelope, fails unless it has type typ, and decodes
// its payload into p.
func (c *client) expect(typ string, p any) {
	c.t.Helper()
	_ = c.ws.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, data, err := c.ws.ReadMessage()
	if err != nil {
		c.t.Fatalf("waiting for %s: %v", typ, err)
	}
	var in InMsg
	if err := json.Unmarshal(data, &in); err != nil {
		c.t.Fatalf("bad envelope %s: %v", data, err)
	}
	if in.T != typ {
		c.t.Fatalf("got %s (%s), expected %s", in.T, in.P, typ)
	}
	if p != nil {
		if err := json.Unmarshal(in.P, p); err != nil {
			c.t.Fatalf("bad %s payload %s: %v", typ, in.P, err)
		}
	}
}

func TestRaceOverWebsocket(t *testing.T) {
	s, store, _ := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	ann := dial(t, srv, "ann")
	bob := dial(t, srv, "bob")

	ann.send(TypeSearch, SearchPayload{Pack: "animals"})
	var searching SearchingPayload
	ann.expect(TypeSearching, &searching)
	if searching.Pack != "animals" {
		t.Errorf("searching Pack = %q, expected animals", searching.Pack)
	}

	bob.send(TypeSearch, SearchPayload{Pack: "animals"})
	var am, bm MatchedPayload
	ann.expect(TypeMatched, &am)
	bob.expect(TypeMatched, &bm)
	if am.Race == "" || am.Race != bm.Race {
		t.Fatalf("race IDs = %q / %q, expected the same race", am.Race, bm.Race)
	}
	if am.Seed != bm.Seed {
		t.Errorf("seeds = %d / %d, expected a shared seed", am.Seed, bm.Seed)
	}
	if am.OpponentName != "bob" || bm.OpponentName != "ann" {
		t.Errorf("opponent names = %q / %q", am.OpponentName, bm.OpponentName)
	}

	ann.send(TypeDetails, DetailsPayload{Score: 60, Words: 2})
	var d DetailsPayload
	bob.expect(TypeOpponentDetails, &d)
	if d.Score != 60 || d.Words != 2 || d.Over {
		t.Errorf("opponent details = %+v, expected score 60 words 2", d)
	}

	bob.send(TypeDetails, DetailsPayload{Score: 30, Words: 1, Over: true})
	ann.expect(TypeOpponentDetails, nil)

	var ae, be RaceEndedPayload
	ann.expect(TypeRaceEnded, &ae)
	bob.expect(TypeRaceEnded, &be)
	if !ae.Won || be.Won || ae.Draw {
		t.Errorf("ann won = %v, bob won = %v, expected ann to win", ae.Won, be.Won)
	}
	if ae.You != 60 || ae.Them != 30 || ae.Reason != "completed" {
		t.Errorf("ann result = %+v, expected 60 vs 30 completed", ae)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		saved, err := store.RaceByID(am.Race)
		if err != nil {
			t.Fatalf("RaceByID() failed: %v", err)
		}
		if saved != nil {
			if saved.WinnerSession != am.You {
				t.Errorf("WinnerSession = %q, expected %q", saved.WinnerSession, am.You)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("race result not saved")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDisconnectForfeits(t *testing.T) {
	s, _, _ := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	ann := dial(t, srv, "ann")
	bob := dial(t, srv, "bob")

	ann.send(TypeSearch, SearchPayload{Pack: "tech"})
	ann.expect(TypeSearching, nil)
	bob.send(TypeSearch, SearchPayload{Pack: "tech"})
	ann.expect(TypeMatched, nil)
	bob.expect(TypeMatched, nil)

	bob.ws.Close()

	var end RaceEndedPayload
	ann.expect(TypeRaceEnded, &end)
	if !end.Won || end.Reason != "disconnect" {
		t.Errorf("result = %+v, expected a win by disconnect", end)
	}
}

func TestBadMessages(t *testing.T) {
	s, _, _ := newTestServer(t)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	c := dial(t, srv, "ann")

	tests := []struct {
		name string
		raw  string
		code string
	}{
		{"not json", "{", "BAD_JSON"},
		{"unknown type", `{"t":"dance"}`, "UNKNOWN_TYPE"},
		{"search without pack", `{"t":"user:search","p":{}}`, "BAD_PAYLOAD"},
		{"negative score", `{"t":"details:set","p":{"score":-1}}`, "BAD_PAYLOAD"},
	}

	for _, tc := range tests {
		if err := c.ws.WriteMessage(websocket.TextMessage, []byte(tc.raw)); err != nil {
			t.Fatal(err)
		}
		var p ErrPayload
		c.expect(TypeError, &p)
		if p.Code != tc.code {
			t.Errorf("%s: Code = %q, expected %q", tc.name, p.Code, tc.code)
		}
	}

	msg, _ := json.Marshal(InMsg{T: TypePing, ReqID: "r1"})
	if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		t.Fatal(err)
	}
	c.expect(TypePong, nil)
}

package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/ecoscan/ecoscan/internal/classify"
	"github.com/ecoscan/ecoscan/internal/database"
	"github.com/ecoscan/ecoscan/internal/email"
)

func setupTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.Default()
	source := classify.NewSource(logger, classify.WithMockDelay(0))
	emailClient := email.NewClient("", "")

	srv := New(db, source, emailClient, Config{}, logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	jar, _ := cookiejar.New(nil)
	return ts, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	data, _ := json.Marshal(body)
	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func register(t *testing.T, client *http.Client, baseURL, emailAddr string) {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/auth/register", map[string]string{
		"email":    emailAddr,
		"name":     "Alice",
		"password": "correct-horse",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d", resp.StatusCode)
	}
}

func TestRegisterLoginFlow(t *testing.T) {
	ts, client := setupTestServer(t)

	register(t, client, ts.URL, "alice@example.com")

	// Duplicate email is rejected
	resp := postJSON(t, client, ts.URL+"/api/auth/register", map[string]string{
		"email": "alice@example.com", "name": "A", "password": "correct-horse",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", resp.StatusCode)
	}

	// Wrong password
	resp = postJSON(t, client, ts.URL+"/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", resp.StatusCode)
	}

	// Correct password
	resp = postJSON(t, client, ts.URL+"/api/auth/login", map[string]string{
		"email": "alice@example.com", "password": "correct-horse",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}

	var body struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if body.User.Email != "alice@example.com" {
		t.Errorf("user email = %q", body.User.Email)
	}
}

func TestUnauthenticatedRejected(t *testing.T) {
	ts, client := setupTestServer(t)

	resp, err := client.Get(ts.URL + "/api/scans")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestScanWithLabel(t *testing.T) {
	ts, client := setupTestServer(t)
	register(t, client, ts.URL, "alice@example.com")

	resp := postJSON(t, client, ts.URL+"/api/scans", map[string]string{"label": "Plastic Bottle"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("scan status = %d", resp.StatusCode)
	}

	var body struct {
		Classification struct {
			DisplayType string `json:"display_type"`
			Points      int    `json:"points"`
			Recognized  bool   `json:"recognized"`
		} `json:"classification"`
		State struct {
			Points int `json:"points"`
			Scans  int `json:"scans"`
		} `json:"state"`
		BadgesEarned []string `json:"badges_earned"`
	}
	json.NewDecoder(resp.Body).Decode(&body)

	if body.Classification.DisplayType != "Plastic" || body.Classification.Points != 10 {
		t.Errorf("classification = %+v", body.Classification)
	}
	if body.State.Points != 10 || body.State.Scans != 1 {
		t.Errorf("state = %+v", body.State)
	}
	if len(body.BadgesEarned) != 1 || body.BadgesEarned[0] != "Eco Starter" {
		t.Errorf("badges earned = %v", body.BadgesEarned)
	}
}

func TestScanUnrecognizedLabel(t *testing.T) {
	ts, client := setupTestServer(t)
	register(t, client, ts.URL, "alice@example.com")

	resp := postJSON(t, client, ts.URL+"/api/scans", map[string]string{"label": "mystery object"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("scan status = %d", resp.StatusCode)
	}

	var body struct {
		Classification struct {
			Recognized bool `json:"recognized"`
			Points     int  `json:"points"`
		} `json:"classification"`
		State struct {
			Points int `json:"points"`
			Scans  int `json:"scans"`
		} `json:"state"`
	}
	json.NewDecoder(resp.Body).Decode(&body)

	if body.Classification.Recognized {
		t.Error("expected unrecognized classification")
	}
	if body.State.Points != 0 || body.State.Scans != 0 {
		t.Errorf("unrecognized scan changed state: %+v", body.State)
	}
}

func TestRedeemFlow(t *testing.T) {
	ts, client := setupTestServer(t)
	register(t, client, ts.URL, "alice@example.com")

	// Not enough points yet
	resp := postJSON(t, client, ts.URL+"/api/rewards/redeem", map[string]string{"reward_id": "bread"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("redeem status = %d, want 409", resp.StatusCode)
	}

	// 40 e-waste scans at 15 points each = 600 points
	for i := 0; i < 40; i++ {
		r := postJSON(t, client, ts.URL+"/api/scans", map[string]string{"label": "Electronic Waste"})
		r.Body.Close()
	}

	resp = postJSON(t, client, ts.URL+"/api/rewards/redeem", map[string]string{"reward_id": "bread"})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("redeem status = %d", resp.StatusCode)
	}

	var body struct {
		Redemption struct {
			RewardID   string `json:"reward_id"`
			PointsCost int    `json:"points_cost"`
		} `json:"redemption"`
		State struct {
			Points int `json:"points"`
		} `json:"state"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	if body.Redemption.RewardID != "bread" || body.Redemption.PointsCost != 400 {
		t.Errorf("redemption = %+v", body.Redemption)
	}
	if body.State.Points != 200 {
		t.Errorf("points after redeem = %d, want 200", body.State.Points)
	}

	// Unknown reward
	resp = postJSON(t, client, ts.URL+"/api/rewards/redeem", map[string]string{"reward_id": "yacht"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown reward status = %d, want 404", resp.StatusCode)
	}

	// History shows the redemption
	histResp, err := client.Get(ts.URL + "/api/redemptions")
	if err != nil {
		t.Fatalf("GET redemptions: %v", err)
	}
	defer histResp.Body.Close()
	var history []struct {
		RewardID string `json:"reward_id"`
	}
	json.NewDecoder(histResp.Body).Decode(&history)
	if len(history) != 1 || history[0].RewardID != "bread" {
		t.Errorf("history = %+v", history)
	}
}

func TestCatalogCentersAndHealth(t *testing.T) {
	ts, client := setupTestServer(t)
	register(t, client, ts.URL, "alice@example.com")

	resp, err := client.Get(ts.URL + "/api/rewards")
	if err != nil {
		t.Fatalf("GET rewards: %v", err)
	}
	var catalog []struct {
		ID string `json:"id"`
	}
	json.NewDecoder(resp.Body).Decode(&catalog)
	resp.Body.Close()
	if len(catalog) != 9 {
		t.Errorf("catalog size = %d, want 9", len(catalog))
	}

	resp, err = client.Get(ts.URL + "/api/centers")
	if err != nil {
		t.Fatalf("GET centers: %v", err)
	}
	var centers []struct {
		Name string `json:"name"`
	}
	json.NewDecoder(resp.Body).Decode(&centers)
	resp.Body.Close()
	if len(centers) != 4 {
		t.Errorf("centers = %d, want 4", len(centers))
	}

	resp, err = http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}
}

func TestLeaderboard(t *testing.T) {
	ts, client := setupTestServer(t)
	register(t, client, ts.URL, "alice@example.com")

	r := postJSON(t, client, ts.URL+"/api/scans", map[string]string{"label": "Glass Bottle"})
	r.Body.Close()

	resp, err := client.Get(ts.URL + "/api/leaderboard")
	if err != nil {
		t.Fatalf("GET leaderboard: %v", err)
	}
	defer resp.Body.Close()
	var entries []struct {
		Rank   int    `json:"rank"`
		Name   string `json:"name"`
		Points int    `json:"points"`
	}
	json.NewDecoder(resp.Body).Decode(&entries)
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Rank != 1 || entries[0].Points != 10 {
		t.Errorf("entry = %+v", entries[0])
	}
}

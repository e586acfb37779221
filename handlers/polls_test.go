// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pulsepoll/server/middleware"
	"github.com/pulsepoll/server/models"
	"github.com/pulsepoll/server/testutil"
)

func TestCreatePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	creatorID := testutil.CreateTestUser(t, db, "creator", "creator@example.com", "pw")

	tests := []struct {
		name        string
		req         models.CreatePollRequest
		wantStatus  int
		wantOptions []string
	}{
		{
			"single choice with options",
			models.CreatePollRequest{Question: "Tabs or spaces?", Type: models.TypeSingleChoice, Options: []string{"Tabs", "Spaces"}},
			http.StatusCreated,
			[]string{"Tabs", "Spaces"},
		},
		{
			"yes/no generates options",
			models.CreatePollRequest{Question: "Ship it?", Type: models.TypeYesNo},
			http.StatusCreated,
			[]string{"Yes", "No"},
		},
		{
			"rating generates five options",
			models.CreatePollRequest{Question: "Rate the release", Type: models.TypeRating},
			http.StatusCreated,
			[]string{"1", "2", "3", "4", "5"},
		},
		{
			"open-ended has no options",
			models.CreatePollRequest{Question: "Thoughts?", Type: models.TypeOpenEnded},
			http.StatusCreated,
			[]string{},
		},
		{
			"missing question",
			models.CreatePollRequest{Type: models.TypeSingleChoice, Options: []string{"A", "B"}},
			http.StatusBadRequest,
			nil,
		},
		{
			"missing type",
			models.CreatePollRequest{Question: "Q?", Options: []string{"A", "B"}},
			http.StatusBadRequest,
			nil,
		},
		{
			"unknown type",
			models.CreatePollRequest{Question: "Q?", Type: "ranked-choice", Options: []string{"A", "B"}},
			http.StatusBadRequest,
			nil,
		},
		{
			"single choice with one option",
			models.CreatePollRequest{Question: "Q?", Type: models.TypeSingleChoice, Options: []string{"Only"}},
			http.StatusBadRequest,
			nil,
		},
		{
			"image-based with one option",
			models.CreatePollRequest{Question: "Q?", Type: models.TypeImageBased, Options: []string{"/uploads/a.png"}},
			http.StatusBadRequest,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := middleware.WithUserID(testutil.MakeRequest("POST", "/api/v1/poll", tt.req, nil), creatorID)
			w := httptest.NewRecorder()

			handler.CreatePoll(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantStatus != http.StatusCreated {
				return
			}

			var poll models.Poll
			testutil.AssertJSON(t, w, &poll)

			if poll.Creator.ID != creatorID {
				t.Errorf("Expected creator %s, got %s", creatorID, poll.Creator.ID)
			}
			if poll.Closed {
				t.Error("New poll must start open")
			}
			if len(poll.Options) != len(tt.wantOptions) {
				t.Fatalf("Expected %d options, got %d", len(tt.wantOptions), len(poll.Options))
			}
			for i, want := range tt.wantOptions {
				if poll.Options[i].Label != want {
					t.Errorf("Option %d: expected label %q, got %q", i, want, poll.Options[i].Label)
				}
				if poll.Options[i].Votes != 0 {
					t.Errorf("Option %d: expected zero votes, got %d", i, poll.Options[i].Votes)
				}
			}
		})
	}
}

func TestCreatePollImageOptions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	creatorID := testutil.CreateTestUser(t, db, "creator", "creator@example.com", "pw")

	req := middleware.WithUserID(testutil.MakeRequest("POST", "/api/v1/poll", models.CreatePollRequest{
		Question: "Which logo?",
		Type:     models.TypeImageBased,
		Options:  []string{"/uploads/a.png", "/uploads/b.png"},
	}, nil), creatorID)
	w := httptest.NewRecorder()

	handler.CreatePoll(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var poll models.Poll
	testutil.AssertJSON(t, w, &poll)

	if len(poll.Options) != 2 {
		t.Fatalf("Expected 2 options, got %d", len(poll.Options))
	}
	for i, want := range []string{"/uploads/a.png", "/uploads/b.png"} {
		if poll.Options[i].ImageURL == nil || *poll.Options[i].ImageURL != want {
			t.Errorf("Option %d: expected image URL %q, got %v", i, want, poll.Options[i].ImageURL)
		}
	}
}

func TestGetPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	creatorID := testutil.CreateTestUser(t, db, "creator", "creator@example.com", "pw")
	pollID := testutil.CreateTestPoll(t, db, creatorID, models.TypeSingleChoice, []string{"A", "B"}, false)

	t.Run("found", func(t *testing.T) {
		req := middleware.WithUserID(testutil.MakeRequest("GET", "/api/v1/poll/"+pollID, nil, nil), creatorID)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.GetPoll(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var poll models.Poll
		testutil.AssertJSON(t, w, &poll)
		if poll.ID != pollID {
			t.Errorf("Expected poll %s, got %s", pollID, poll.ID)
		}
		if poll.Question != "Test question?" {
			t.Errorf("Unexpected question %q", poll.Question)
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := middleware.WithUserID(testutil.MakeRequest("GET", "/api/v1/poll/ghost", nil, nil), creatorID)
		req.SetPathValue("id", "ghost")
		w := httptest.NewRecorder()

		handler.GetPoll(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestListPolls(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	alice := testutil.CreateTestUser(t, db, "alice", "alice@example.com", "pw")
	bob := testutil.CreateTestUser(t, db, "bob", "bob@example.com", "pw")

	// 7 single-choice polls by alice, 5 yes/no polls by bob
	for i := 0; i < 7; i++ {
		testutil.CreateTestPoll(t, db, alice, models.TypeSingleChoice, []string{"A", "B"}, false)
	}
	for i := 0; i < 5; i++ {
		testutil.CreateTestPoll(t, db, bob, models.TypeYesNo, []string{"Yes", "No"}, false)
	}

	list := func(t *testing.T, query string) models.PollListResponse {
		t.Helper()
		req := middleware.WithUserID(testutil.MakeRequest("GET", "/api/v1/poll"+query, nil, nil), alice)
		w := httptest.NewRecorder()
		handler.ListPolls(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.PollListResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	t.Run("first page has more", func(t *testing.T) {
		resp := list(t, "?page=1&limit=10")
		if len(resp.Polls) != 10 {
			t.Errorf("Expected 10 polls, got %d", len(resp.Polls))
		}
		if !resp.HasMore {
			t.Error("Expected hasMore on first page")
		}
	})

	t.Run("last page exhausts", func(t *testing.T) {
		resp := list(t, "?page=2&limit=10")
		if len(resp.Polls) != 2 {
			t.Errorf("Expected 2 polls, got %d", len(resp.Polls))
		}
		if resp.HasMore {
			t.Error("Expected hasMore=false on last page")
		}
	})

	t.Run("filter by type", func(t *testing.T) {
		resp := list(t, fmt.Sprintf("?type=%s&limit=20", models.TypeYesNo))
		if len(resp.Polls) != 5 {
			t.Errorf("Expected 5 yes/no polls, got %d", len(resp.Polls))
		}
		for _, p := range resp.Polls {
			if p.Type != models.TypeYesNo {
				t.Errorf("Unexpected poll type %s", p.Type)
			}
		}
	})

	t.Run("filter by creator", func(t *testing.T) {
		resp := list(t, "?creatorId="+alice+"&limit=20")
		if len(resp.Polls) != 7 {
			t.Errorf("Expected 7 polls by alice, got %d", len(resp.Polls))
		}
		for _, p := range resp.Polls {
			if p.Creator.ID != alice {
				t.Errorf("Unexpected creator %s", p.Creator.ID)
			}
		}
	})

	t.Run("newest first", func(t *testing.T) {
		resp := list(t, "?limit=20")
		for i := 1; i < len(resp.Polls); i++ {
			if resp.Polls[i].CreatedAt.After(resp.Polls[i-1].CreatedAt) {
				t.Error("Polls not sorted by descending creation time")
				break
			}
		}
	})
}

func TestClosePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	creator := testutil.CreateTestUser(t, db, "creator", "creator@example.com", "pw")
	stranger := testutil.CreateTestUser(t, db, "stranger", "stranger@example.com", "pw")
	pollID := testutil.CreateTestPoll(t, db, creator, models.TypeSingleChoice, []string{"A", "B"}, false)

	closeAs := func(t *testing.T, asUser string) *httptest.ResponseRecorder {
		t.Helper()
		req := middleware.WithUserID(testutil.MakeRequest("POST", "/api/v1/poll/"+pollID+"/close", nil, nil), asUser)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()
		handler.ClosePoll(w, req)
		return w
	}

	t.Run("non-creator forbidden", func(t *testing.T) {
		w := closeAs(t, stranger)
		testutil.AssertStatus(t, w, http.StatusForbidden)

		var closed bool
		if err := db.QueryRow("SELECT closed FROM poll WHERE id = $1", pollID).Scan(&closed); err != nil {
			t.Fatalf("Failed to query poll: %v", err)
		}
		if closed {
			t.Error("Forbidden close must leave the poll open")
		}
	})

	t.Run("creator closes", func(t *testing.T) {
		w := closeAs(t, creator)
		testutil.AssertStatus(t, w, http.StatusOK)

		var poll models.Poll
		testutil.AssertJSON(t, w, &poll)
		if !poll.Closed {
			t.Error("Expected closed poll in response")
		}
	})

	t.Run("closing twice conflicts", func(t *testing.T) {
		w := closeAs(t, creator)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("unknown poll", func(t *testing.T) {
		req := middleware.WithUserID(testutil.MakeRequest("POST", "/api/v1/poll/ghost/close", nil, nil), creator)
		req.SetPathValue("id", "ghost")
		w := httptest.NewRecorder()
		handler.ClosePoll(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDeletePoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewPollHandler(db, cfg)

	creator := testutil.CreateTestUser(t, db, "creator", "creator@example.com", "pw")
	stranger := testutil.CreateTestUser(t, db, "stranger", "stranger@example.com", "pw")
	pollID := testutil.CreateTestPoll(t, db, creator, models.TypeSingleChoice, []string{"A", "B"}, false)
	testutil.CastTestVote(t, db, pollID, stranger, 0)

	t.Run("non-creator forbidden", func(t *testing.T) {
		req := middleware.WithUserID(testutil.MakeRequest("DELETE", "/api/v1/poll/"+pollID, nil, nil), stranger)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.DeletePoll(w, req)
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("creator deletes and votes cascade", func(t *testing.T) {
		req := middleware.WithUserID(testutil.MakeRequest("DELETE", "/api/v1/poll/"+pollID, nil, nil), creator)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.DeletePoll(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var pollCount, voteCount int
		if err := db.QueryRow("SELECT COUNT(*) FROM poll WHERE id = $1", pollID).Scan(&pollCount); err != nil {
			t.Fatalf("Failed to count polls: %v", err)
		}
		if err := db.QueryRow("SELECT COUNT(*) FROM poll_vote WHERE poll_id = $1", pollID).Scan(&voteCount); err != nil {
			t.Fatalf("Failed to count votes: %v", err)
		}
		if pollCount != 0 || voteCount != 0 {
			t.Errorf("Expected poll and votes gone, got %d polls, %d votes", pollCount, voteCount)
		}
	})

	t.Run("deleting again is not found", func(t *testing.T) {
		req := middleware.WithUserID(testutil.MakeRequest("DELETE", "/api/v1/poll/"+pollID, nil, nil), creator)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()

		handler.DeletePoll(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

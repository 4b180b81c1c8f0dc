package search

import (
	"context"
	"errors"
	"testing"

	"github.com/gatherly/scout/internal/models"
)

func typedGateway() *fakeGateway {
	return &fakeGateway{
		meetings: []*models.Meeting{
			{ID: "m-1", Title: "Team Standup", Description: "Daily sync", AuthorName: "Dana", IsActive: true, CreatedAt: testNow.AddDate(0, -2, 0)},
			{ID: "m-2", Title: "Old Standup", Description: "Retired format", AuthorName: "Dana", IsActive: false, CreatedAt: testNow.AddDate(-1, 0, 0)},
			{ID: "m-3", Title: "Planning", Description: "Standup feedback review", AuthorName: "Sam", IsActive: true, CreatedAt: testNow.AddDate(0, -3, 0)},
		},
		posts: []*models.Post{
			{ID: "p-1", Title: "Standup notes", Content: "From today", MeetingID: "m-1", AuthorName: "Lee", IsActive: true, CreatedAt: testNow.AddDate(0, -2, 0)},
		},
		comments: []*models.Comment{
			{ID: "c-1", Content: "standup went long", PostID: "p-1", IsActive: true, CreatedAt: testNow.AddDate(0, -2, 0)},
			{ID: "c-2", Content: "standup reply", PostID: "p-1", ParentCommentID: "c-1", IsActive: true, CreatedAt: testNow.AddDate(0, -2, 1)},
		},
		users: []*models.User{
			{ID: "u-1", FullName: "Standup Bot", Email: "bot@example.com", IsActive: true, CreatedAt: testNow.AddDate(0, -2, 0)},
		},
	}
}

func TestSearchMeetings_activeOnlyDefault(t *testing.T) {
	svc := newTestService(typedGateway())

	results, err := svc.SearchMeetings(context.Background(), validRequest("standup"))
	if err != nil {
		t.Fatalf("SearchMeetings: %v", err)
	}
	// m-1 (exact-ish title match) and m-3 (description) survive; inactive m-2 does not.
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(results), results)
	}
	if results[0].Meeting.ID != "m-1" {
		t.Errorf("title match should rank first, got %s", results[0].Meeting.ID)
	}
	if results[0].Score <= results[1].Score {
		t.Errorf("scores not descending: %v, %v", results[0].Score, results[1].Score)
	}
	for i, r := range results {
		if r.Rank != i+1 {
			t.Errorf("rank[%d] = %d, want %d", i, r.Rank, i+1)
		}
	}
}

func TestSearchMeetings_inactiveIncludedOnRequest(t *testing.T) {
	svc := newTestService(typedGateway())
	req := validRequest("standup")
	include := false
	req.Filters.ActiveOnly = &include

	results, err := svc.SearchMeetings(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want 3 with inactive included", len(results))
	}
}

func TestSearchMeetings_emptyQuery(t *testing.T) {
	svc := newTestService(typedGateway())
	results, err := svc.SearchMeetings(context.Background(), &models.SearchRequest{Query: "  ", Page: 1, PageSize: 20})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("empty query should return no results, got %d", len(results))
	}
}

func TestSearchMeetings_gatewayError(t *testing.T) {
	gw := typedGateway()
	boom := errors.New("no such table")
	gw.meetingErr = boom
	svc := newTestService(gw)

	_, err := svc.SearchMeetings(context.Background(), validRequest("standup"))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped gateway error", err)
	}
}

func TestSearchPosts(t *testing.T) {
	svc := newTestService(typedGateway())
	results, err := svc.SearchPosts(context.Background(), validRequest("standup"))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Post.ID != "p-1" || results[0].Rank != 1 {
		t.Errorf("results = %+v", results)
	}
}

func TestSearchComments_carriesReplyFlag(t *testing.T) {
	svc := newTestService(typedGateway())
	results, err := svc.SearchComments(context.Background(), validRequest("standup"))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	flags := map[string]bool{}
	for _, r := range results {
		flags[r.Comment.ID] = r.IsReply
	}
	if flags["c-1"] || !flags["c-2"] {
		t.Errorf("reply flags wrong: %v", flags)
	}
}

func TestSearchUsers(t *testing.T) {
	svc := newTestService(typedGateway())
	results, err := svc.SearchUsers(context.Background(), validRequest("standup"))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].User.ID != "u-1" {
		t.Errorf("results = %+v", results)
	}
}

func TestTypedSearch_rankFollowsPage(t *testing.T) {
	gw := &fakeGateway{}
	for i := 0; i < 5; i++ {
		gw.meetings = append(gw.meetings, &models.Meeting{
			ID: "m-" + string(rune('a'+i)), Title: "standup",
			IsActive: true, CreatedAt: testNow.AddDate(0, -2, -i),
		})
	}
	svc := newTestService(gw)
	req := validRequest("standup")
	req.Page = 2
	req.PageSize = 2

	results, err := svc.SearchMeetings(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Rank != 3 || results[1].Rank != 4 {
		t.Errorf("ranks = %d, %d; want 3, 4", results[0].Rank, results[1].Rank)
	}
}

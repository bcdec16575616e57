package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "shareit/internal/errors"
	"shareit/internal/models"
)

type requestFixture struct {
	users    *fakeUserStore
	items    *fakeItemStore
	requests *fakeRequestStore
	svc      *RequestService
	alice    *models.User
	bob      *models.User
}

func newRequestFixture() *requestFixture {
	users := newFakeUserStore()
	items := newFakeItemStore()
	requests := newFakeRequestStore()

	return &requestFixture{
		users:    users,
		items:    items,
		requests: requests,
		svc:      NewRequestService(requests, users, items),
		alice:    users.addUser("Alice", "alice@example.com"),
		bob:      users.addUser("Bob", "bob@example.com"),
	}
}

func TestRequestCreate(t *testing.T) {
	f := newRequestFixture()

	resp, err := f.svc.Create(context.Background(), f.alice.ID, &models.CreateItemRequestRequest{
		Description: "need a drill",
	})
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.False(t, resp.Created.IsZero())
	assert.Empty(t, resp.Items)

	_, err = f.svc.Create(context.Background(), 999, &models.CreateItemRequestRequest{
		Description: "need a drill",
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestRequestGetOwn(t *testing.T) {
	f := newRequestFixture()

	older := &models.ItemRequest{RequesterID: f.alice.ID, Description: "older", Created: time.Now().Add(-time.Hour)}
	newer := &models.ItemRequest{RequesterID: f.alice.ID, Description: "newer", Created: time.Now()}
	other := &models.ItemRequest{RequesterID: f.bob.ID, Description: "bob's", Created: time.Now()}
	for _, r := range []*models.ItemRequest{older, newer, other} {
		require.NoError(t, f.requests.Create(context.Background(), r))
	}

	resp, err := f.svc.GetOwn(context.Background(), f.alice.ID)
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "newer", resp[0].Description)
	assert.Equal(t, "older", resp[1].Description)
}

func TestRequestGetAllOthers(t *testing.T) {
	f := newRequestFixture()

	mine := &models.ItemRequest{RequesterID: f.alice.ID, Description: "mine", Created: time.Now()}
	theirs := &models.ItemRequest{RequesterID: f.bob.ID, Description: "theirs", Created: time.Now()}
	for _, r := range []*models.ItemRequest{mine, theirs} {
		require.NoError(t, f.requests.Create(context.Background(), r))
	}

	resp, err := f.svc.GetAllOthers(context.Background(), f.alice.ID, models.Page{From: 0, Size: 10})
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "theirs", resp[0].Description)

	_, err = f.svc.GetAllOthers(context.Background(), f.alice.ID, models.Page{From: 5, Size: 0})
	require.Error(t, err)
	assert.True(t, errs.IsBadRequest(err))
}

func TestRequestGet_WithItems(t *testing.T) {
	f := newRequestFixture()

	request := &models.ItemRequest{RequesterID: f.alice.ID, Description: "need a drill", Created: time.Now()}
	require.NoError(t, f.requests.Create(context.Background(), request))

	item := f.items.addItem(f.bob.ID, "Drill", true)
	item.RequestID = &request.ID

	resp, err := f.svc.Get(context.Background(), f.alice.ID, request.ID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, item.ID, resp.Items[0].ID)

	// Any registered user may read any request.
	resp, err = f.svc.Get(context.Background(), f.bob.ID, request.ID)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	_, err = f.svc.Get(context.Background(), f.alice.ID, 404)
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

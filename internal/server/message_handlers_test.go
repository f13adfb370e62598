package server

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMessage(t *testing.T) {
	s, app := setupTestServer(t)
	me := createTestUser(t, s, 9999, "testuser", "password")

	cookie := loginAs(t, app, "testuser", "password")
	resp := doRequest(t, app, http.MethodPost, "/messages/new", cookie, url.Values{
		"text": {"Hello"},
	})
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/users/%d", me.ID), resp.Header.Get("Location"))

	var message models.Message
	require.NoError(t, s.db.First(&message).Error)
	assert.Equal(t, "Hello", message.Text)
	assert.Equal(t, me.ID, message.UserID)
}

func TestAddMessageRequiresLogin(t *testing.T) {
	s, app := setupTestServer(t)
	createTestUser(t, s, 9999, "testuser", "password")

	status, body := finalPage(t, app, http.MethodPost, "/messages/new", "", url.Values{
		"text": {"Hello"},
	})

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Access unauthorized.")

	var count int64
	require.NoError(t, s.db.Model(&models.Message{}).Count(&count).Error)
	assert.Zero(t, count, "no message may be added without a session")
}

func TestAddMessageStaleSession(t *testing.T) {
	s, app := setupTestServer(t)
	me := createTestUser(t, s, 9999, "testuser", "password")

	cookie := loginAs(t, app, "testuser", "password")
	require.NoError(t, s.users.Delete(t.Context(), me.ID))

	status, body := finalPage(t, app, http.MethodPost, "/messages/new", cookie, url.Values{
		"text": {"Hello"},
	})

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Access unauthorized.", "a session pointing at a deleted user is anonymous")
}

func TestAddMessageEmptyText(t *testing.T) {
	s, app := setupTestServer(t)
	createTestUser(t, s, 9999, "testuser", "password")

	cookie := loginAs(t, app, "testuser", "password")
	status, body := finalPage(t, app, http.MethodPost, "/messages/new", cookie, url.Values{
		"text": {""},
	})

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Message text is required.")

	var count int64
	require.NoError(t, s.db.Model(&models.Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestShowMessage(t *testing.T) {
	s, app := setupTestServer(t)
	me := createTestUser(t, s, 9999, "testuser", "password")
	createTestMessage(t, s, 123, me.ID, "a test message")

	resp := doRequest(t, app, http.MethodGet, "/messages/123", "", nil)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "a test message")
	assert.Contains(t, body, "@testuser")
}

func TestShowMessageMissing(t *testing.T) {
	_, app := setupTestServer(t)

	resp := doRequest(t, app, http.MethodGet, "/messages/123", "", nil)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLikeMessageToggles(t *testing.T) {
	s, app := setupTestServer(t)
	author := createTestUser(t, s, 0, "author", "password")
	fan := createTestUser(t, s, 0, "fan", "password")
	message := createTestMessage(t, s, 123, author.ID, "likeable")

	cookie := loginAs(t, app, "fan", "password")

	resp := doRequest(t, app, http.MethodPost, "/messages/123/like", cookie, nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	liked, err := s.likes.IsLiked(t.Context(), fan.ID, message.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	// A second POST removes the like.
	resp = doRequest(t, app, http.MethodPost, "/messages/123/like", cookie, nil)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	liked, err = s.likes.IsLiked(t.Context(), fan.ID, message.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeOwnMessageRefused(t *testing.T) {
	s, app := setupTestServer(t)
	author := createTestUser(t, s, 0, "author", "password")
	createTestMessage(t, s, 123, author.ID, "my own")

	cookie := loginAs(t, app, "author", "password")
	status, body := finalPage(t, app, http.MethodPost, "/messages/123/like", cookie, nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Access unauthorized.")

	var count int64
	require.NoError(t, s.db.Model(&models.Likes{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLikeMessageRequiresLogin(t *testing.T) {
	s, app := setupTestServer(t)
	author := createTestUser(t, s, 0, "author", "password")
	createTestMessage(t, s, 123, author.ID, "likeable")

	status, body := finalPage(t, app, http.MethodPost, "/messages/123/like", "", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Access unauthorized.")

	var count int64
	require.NoError(t, s.db.Model(&models.Likes{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteMessage(t *testing.T) {
	s, app := setupTestServer(t)
	me := createTestUser(t, s, 9999, "testuser", "password")
	createTestMessage(t, s, 123, me.ID, "to delete")

	cookie := loginAs(t, app, "testuser", "password")
	resp := doRequest(t, app, http.MethodPost, "/messages/123/delete", cookie, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusFound, resp.StatusCode)

	var count int64
	require.NoError(t, s.db.Model(&models.Message{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteMessageRequiresLogin(t *testing.T) {
	s, app := setupTestServer(t)
	me := createTestUser(t, s, 9999, "testuser", "password")
	createTestMessage(t, s, 123, me.ID, "kept")

	status, body := finalPage(t, app, http.MethodPost, "/messages/123/delete", "", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Access unauthorized.")

	var count int64
	require.NoError(t, s.db.Model(&models.Message{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "the message must survive")
}

func TestDeleteMessageNotOwner(t *testing.T) {
	s, app := setupTestServer(t)
	author := createTestUser(t, s, 0, "author", "password")
	createTestUser(t, s, 0, "intruder", "password")
	createTestMessage(t, s, 123, author.ID, "kept")

	cookie := loginAs(t, app, "intruder", "password")
	status, body := finalPage(t, app, http.MethodPost, "/messages/123/delete", cookie, nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Access unauthorized.")

	var count int64
	require.NoError(t, s.db.Model(&models.Message{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

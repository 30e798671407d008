package services_test

import (
	"fmt"
	"testing"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func note(t *testing.T, s *shop, userID uint, title string) *entity.Notification {
	t.Helper()
	n, err := s.notif.Create(services.NotificationIn{UserID: userID, Title: title, Message: "m", Type: "INFO"})
	require.NoError(t, err)
	return n
}

func TestListForUserReturnsTwentyNewest(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Reader", entity.RoleUser)
	other := s.user(t, "Other", entity.RoleUser)
	for i := 1; i <= 25; i++ {
		note(t, s, u.ID, fmt.Sprintf("n%d", i))
	}
	note(t, s, other.ID, "not mine")

	list, err := s.notif.ListForUser(u.ID)
	require.NoError(t, err)
	require.Len(t, list, 20)
	assert.Equal(t, "n25", list[0].Title)
	assert.Equal(t, "n6", list[19].Title)
	for _, n := range list {
		assert.Equal(t, u.ID, n.UserID)
		assert.False(t, n.IsRead)
	}
}

func TestMarkAllReadCountsOnlyUnread(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Reader", entity.RoleUser)
	first := note(t, s, u.ID, "a")
	note(t, s, u.ID, "b")
	note(t, s, u.ID, "c")

	_, err := s.notif.MarkRead(first.ID)
	require.NoError(t, err)

	n, err := s.notif.MarkAllRead(u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = s.notif.MarkAllRead(u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestMarkReadForUserHidesOthersNotifications(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Owner", entity.RoleUser)
	other := s.user(t, "Stranger", entity.RoleUser)
	n := note(t, s, u.ID, "private")

	_, err := s.notif.MarkReadForUser(other.ID, n.ID)
	assert.ErrorIs(t, err, services.ErrNotificationNotFound)

	_, err = s.notif.MarkReadForUser(u.ID, n.ID+100)
	assert.ErrorIs(t, err, services.ErrNotificationNotFound)

	got, err := s.notif.MarkReadForUser(u.ID, n.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRead)
}

func TestMarkReadMissingNotification(t *testing.T) {
	s := newShop(t)
	_, err := s.notif.MarkRead(42)
	assert.ErrorIs(t, err, services.ErrNotificationNotFound)
}

func TestNotifyAdminsReachesEveryAdmin(t *testing.T) {
	s := newShop(t)
	a1 := s.user(t, "Admin One", entity.RoleAdmin)
	a2 := s.user(t, "Admin Two", entity.RoleAdmin)
	u := s.user(t, "Customer", entity.RoleUser)

	link := "/admin/orders/1"
	require.NoError(t, s.notif.NotifyAdmins(services.NotificationIn{
		Title: "New Order", Message: "hello", Type: entity.NotificationNewOrder, Link: &link,
	}))

	for _, id := range []uint{a1.ID, a2.ID} {
		list, err := s.notif.ListForUser(id)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, entity.NotificationNewOrder, list[0].Type)
		require.NotNil(t, list[0].Link)
		assert.Equal(t, link, *list[0].Link)
	}
	list, err := s.notif.ListForUser(u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNotifyAdminsWithoutAdmins(t *testing.T) {
	s := newShop(t)
	s.user(t, "Customer", entity.RoleUser)
	assert.NoError(t, s.notif.NotifyAdmins(services.NotificationIn{Title: "x", Message: "y", Type: "INFO"}))
}

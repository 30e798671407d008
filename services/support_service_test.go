package services_test

import (
	"testing"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/repository"
	"github.com/Fenet-Ab/fen-one-shop/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	got []*entity.SupportMessage
}

func (p *recordingPublisher) Publish(m *entity.SupportMessage) { p.got = append(p.got, m) }

func newSupport(s *shop) (*services.SupportService, *recordingPublisher) {
	pub := &recordingPublisher{}
	svc := services.NewSupportService(repository.NewSupportRepository(s.db), s.users)
	svc.Publisher = pub
	return svc, pub
}

func TestSupportSendAndReply(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Customer", entity.RoleUser)
	svc, pub := newSupport(s)

	_, err := svc.Send(u.ID, "   ")
	assert.ErrorIs(t, err, services.ErrEmptyMessage)

	first, err := svc.Send(u.ID, " where is my order? ")
	require.NoError(t, err)
	assert.Equal(t, "where is my order?", first.Message)
	assert.False(t, first.IsAdmin)

	reply, err := svc.Reply(u.ID, "on its way")
	require.NoError(t, err)
	assert.True(t, reply.IsAdmin)
	assert.Equal(t, u.ID, reply.UserID)

	_, err = svc.Reply(u.ID+100, "hello?")
	assert.ErrorIs(t, err, services.ErrUserNotFound)

	msgs, err := svc.Messages(u.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, first.ID, msgs[0].ID)
	assert.Equal(t, reply.ID, msgs[1].ID)

	require.Len(t, pub.got, 2)
	assert.Equal(t, reply.ID, pub.got[1].ID)
}

func TestSupportConversationsShowLatestPerUser(t *testing.T) {
	s := newShop(t)
	a := s.user(t, "Alice", entity.RoleUser)
	b := s.user(t, "Bekele", entity.RoleUser)
	svc, _ := newSupport(s)

	_, err := svc.Send(a.ID, "a1")
	require.NoError(t, err)
	_, err = svc.Send(b.ID, "b1")
	require.NoError(t, err)
	_, err = svc.Reply(a.ID, "a2")
	require.NoError(t, err)

	conv, err := svc.Conversations()
	require.NoError(t, err)
	require.Len(t, conv, 2)
	assert.Equal(t, "a2", conv[0].Message)
	assert.Equal(t, "b1", conv[1].Message)
	require.NotNil(t, conv[1].User)
	assert.Equal(t, "Bekele", conv[1].User.Name)
}

func TestLikeToggle(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Fan", entity.RoleUser)
	m := s.material(t, "Books", "Novel", "10")
	likes := services.NewLikeService(repository.NewLikeRepository(s.db), s.materials)

	liked, err := likes.Toggle(u.ID, m.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	list, err := likes.ListForUser(u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Material)
	assert.Equal(t, "Novel", list[0].Material.Title)

	liked, err = likes.Toggle(u.ID, m.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	list, err = likes.ListForUser(u.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = likes.Toggle(u.ID, m.ID+100)
	assert.ErrorIs(t, err, services.ErrMaterialNotFound)
}

package services_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/Fenet-Ab/fen-one-shop/entity"
	"github.com/Fenet-Ab/fen-one-shop/pkg/apperr"
	"github.com/Fenet-Ab/fen-one-shop/pkg/chapa"
	"github.com/Fenet-Ab/fen-one-shop/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	initReqs   []chapa.InitializeRequest
	verifyRefs []string

	initResp   map[string]any
	initErr    error
	verifyResp map[string]any
	verifyErr  error

	// called during Initialize, before the response is returned
	onInit func(chapa.InitializeRequest)
}

func (g *fakeGateway) Initialize(_ context.Context, in chapa.InitializeRequest) (map[string]any, error) {
	g.initReqs = append(g.initReqs, in)
	if g.onInit != nil {
		g.onInit(in)
	}
	return g.initResp, g.initErr
}

func (g *fakeGateway) Verify(_ context.Context, ref string) (map[string]any, error) {
	g.verifyRefs = append(g.verifyRefs, ref)
	return g.verifyResp, g.verifyErr
}

func newPayment(s *shop, gw services.PaymentGateway) *services.PaymentService {
	return services.NewPaymentService(s.orders, s.users, gw, services.PaymentConfig{
		Currency:    "ETB",
		APIBaseURL:  "http://localhost:5000/api/",
		FrontendURL: "http://localhost:3000",
	})
}

func placeOrder(t *testing.T, s *shop, u *entity.User) *entity.Order {
	t.Helper()
	a := s.material(t, "Electronics", "Radio", "100")
	b := s.material(t, "Electronics", "Cable", "50")
	s.add(t, u.ID, a.ID, 2)
	s.add(t, u.ID, b.ID, 1)
	o, err := s.order.Checkout(u.ID, "")
	require.NoError(t, err)
	return o
}

func storedRef(t *testing.T, s *shop, orderID uint) *string {
	t.Helper()
	o, err := s.orders.GetOrder(orderID)
	require.NoError(t, err)
	return o.TxRef
}

var txRefPattern = regexp.MustCompile(`^FEN-\d+-[0-9a-f]{12}$`)

func TestInitializeStoresReferenceBeforeProviderCall(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Abebe Kebede", entity.RoleUser)
	o := placeOrder(t, s, u)

	gw := &fakeGateway{initResp: map[string]any{
		"status": "success",
		"data":   map[string]any{"checkout_url": "https://checkout.example/abc"},
	}}
	gw.onInit = func(in chapa.InitializeRequest) {
		ref := storedRef(t, s, o.ID)
		require.NotNil(t, ref)
		assert.Equal(t, in.TxRef, *ref)
	}
	pay := newPayment(s, gw)

	out, err := pay.Initialize(context.Background(), o.ID, u.ID)
	require.NoError(t, err)
	assert.Equal(t, gw.initResp, out)

	require.Len(t, gw.initReqs, 1)
	req := gw.initReqs[0]
	assert.Regexp(t, txRefPattern, req.TxRef)
	assert.Equal(t, "250.00", req.Amount)
	assert.Equal(t, "ETB", req.Currency)
	assert.Equal(t, u.Email, req.Email)
	assert.Equal(t, "Abebe", req.FirstName)
	assert.Equal(t, "Kebede", req.LastName)
	assert.Equal(t, fmt.Sprintf("http://localhost:5000/api/payment/verify/%d", o.ID), req.CallbackURL)
	assert.Equal(t, fmt.Sprintf("http://localhost:3000/orders?verify=%d&tx_ref=%s", o.ID, req.TxRef), req.ReturnURL)
}

func TestInitializeUsesFreshReferencePerAttempt(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Almaz", entity.RoleUser)
	o := placeOrder(t, s, u)
	gw := &fakeGateway{initResp: map[string]any{"status": "success"}}
	pay := newPayment(s, gw)

	_, err := pay.Initialize(context.Background(), o.ID, u.ID)
	require.NoError(t, err)
	_, err = pay.Initialize(context.Background(), o.ID, u.ID)
	require.NoError(t, err)

	require.Len(t, gw.initReqs, 2)
	assert.NotEqual(t, gw.initReqs[0].TxRef, gw.initReqs[1].TxRef)
	assert.Equal(t, gw.initReqs[1].TxRef, *storedRef(t, s, o.ID))
	assert.Equal(t, "Almaz", gw.initReqs[0].FirstName)
	assert.Equal(t, "FenStore", gw.initReqs[0].LastName)
}

func TestInitializeProviderFailureKeepsReference(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Kebede", entity.RoleUser)
	o := placeOrder(t, s, u)
	gw := &fakeGateway{initErr: &chapa.APIError{StatusCode: 400, Message: "invalid currency"}}
	pay := newPayment(s, gw)

	_, err := pay.Initialize(context.Background(), o.ID, u.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrPaymentInit)
	assert.Equal(t, apperr.Upstream, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "invalid currency")

	ref := storedRef(t, s, o.ID)
	require.NotNil(t, ref)
	assert.Equal(t, gw.initReqs[0].TxRef, *ref)
}

func TestInitializeChecksOwnership(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Owner", entity.RoleUser)
	other := s.user(t, "Other", entity.RoleUser)
	o := placeOrder(t, s, u)
	gw := &fakeGateway{}
	pay := newPayment(s, gw)

	_, err := pay.Initialize(context.Background(), o.ID, other.ID)
	assert.ErrorIs(t, err, services.ErrNotOrderOwner)
	_, err = pay.Initialize(context.Background(), o.ID+100, u.ID)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)

	s.markPaid(t, o.ID)
	_, err = pay.Initialize(context.Background(), o.ID, u.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyPaid)
	assert.Empty(t, gw.initReqs)
}

func TestVerifyWithoutReferenceSkipsProvider(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "NoRef", entity.RoleUser)
	o := placeOrder(t, s, u)
	gw := &fakeGateway{}
	pay := newPayment(s, gw)

	out, err := pay.Verify(context.Background(), o.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "failed", out["status"])
	assert.Equal(t, "No transaction reference found for this order. Please try paying again.", out["message"])
	assert.Empty(t, gw.verifyRefs)

	// unknown order behaves the same
	out, err = pay.Verify(context.Background(), o.ID+100, "")
	require.NoError(t, err)
	assert.Equal(t, "failed", out["status"])
	assert.Empty(t, gw.verifyRefs)
}

func TestVerifySuccessMarksPaid(t *testing.T) {
	cases := map[string]map[string]any{
		"top level status": {"status": "success", "data": map[string]any{"status": "pending", "amount": "250"}},
		"nested status":    {"status": "ok", "data": map[string]any{"status": "success", "amount": "250"}},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			s := newShop(t)
			u := s.user(t, "Payer", entity.RoleUser)
			o := placeOrder(t, s, u)
			_, err := s.orders.SetTxRef(o.ID, "FEN-stored")
			require.NoError(t, err)

			gw := &fakeGateway{verifyResp: body}
			pay := newPayment(s, gw)

			out, err := pay.Verify(context.Background(), o.ID, "")
			require.NoError(t, err)
			assert.Equal(t, "success", out["status"])
			assert.Equal(t, "Payment verified successfully", out["message"])
			assert.Equal(t, body["data"], out["data"])
			assert.Equal(t, []string{"FEN-stored"}, gw.verifyRefs)

			paid, err := s.orders.GetOrder(o.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.PaymentPaid, paid.PaymentStatus)

			// again: still PAID, still success
			out, err = pay.Verify(context.Background(), o.ID, "")
			require.NoError(t, err)
			assert.Equal(t, "success", out["status"])
		})
	}
}

func TestVerifyPrefersSuppliedReference(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Caller", entity.RoleUser)
	o := placeOrder(t, s, u)
	_, err := s.orders.SetTxRef(o.ID, "FEN-stored")
	require.NoError(t, err)

	supplied := services.NewTxRef(o.ID)
	gw := &fakeGateway{verifyResp: map[string]any{"status": "success"}}
	_, err = newPayment(s, gw).Verify(context.Background(), o.ID, supplied)
	require.NoError(t, err)
	assert.Equal(t, []string{supplied}, gw.verifyRefs)
}

func TestVerifyRejectsReferenceOfAnotherOrder(t *testing.T) {
	s := newShop(t)
	alice := s.user(t, "Alice", entity.RoleUser)
	bob := s.user(t, "Bob", entity.RoleUser)
	mine := placeOrder(t, s, alice)
	m := s.material(t, "Jewelry", "Ring", "999")
	s.add(t, bob.ID, m.ID, 1)
	theirs, err := s.order.Checkout(bob.ID, "")
	require.NoError(t, err)

	gw := &fakeGateway{
		initResp:   map[string]any{"status": "success"},
		verifyResp: map[string]any{"status": "success"},
	}
	pay := newPayment(s, gw)
	_, err = pay.Initialize(context.Background(), mine.ID, alice.ID)
	require.NoError(t, err)
	aliceRef := *storedRef(t, s, mine.ID)

	out, err := pay.Verify(context.Background(), theirs.ID, aliceRef)
	require.NoError(t, err)
	assert.Equal(t, "failed", out["status"])
	assert.Empty(t, gw.verifyRefs)

	// a prefix of another id is not a match either
	assert.False(t, services.RefBelongsTo(fmt.Sprintf("FEN-%d1-abc", mine.ID), mine.ID))
	assert.True(t, services.RefBelongsTo(aliceRef, mine.ID))

	still, err := s.orders.GetOrder(theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, still.PaymentStatus)
}

func TestVerifyRejectsMismatchedProviderReference(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Mismatch", entity.RoleUser)
	o := placeOrder(t, s, u)
	gw := &fakeGateway{verifyResp: map[string]any{
		"status": "success",
		"data":   map[string]any{"status": "success", "tx_ref": "FEN-999-000000000000"},
	}}

	out, err := newPayment(s, gw).Verify(context.Background(), o.ID, services.NewTxRef(o.ID))
	require.NoError(t, err)
	assert.Equal(t, "failed", out["status"])

	still, err := s.orders.GetOrder(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, still.PaymentStatus)
}

func TestVerifyStorageFailureBecomesFailedPayload(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Unlucky", entity.RoleUser)
	o := placeOrder(t, s, u)
	ref := services.NewTxRef(o.ID)
	require.NoError(t, s.db.Migrator().DropTable(&entity.Order{}))

	gw := &fakeGateway{verifyResp: map[string]any{"status": "success"}}
	out, err := newPayment(s, gw).Verify(context.Background(), o.ID, ref)
	require.NoError(t, err)
	assert.Equal(t, "failed", out["status"])
	assert.NotEmpty(t, out["message"])
	assert.Equal(t, []string{ref}, gw.verifyRefs)
}

func TestVerifyPassesOtherStatusesThrough(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Pending", entity.RoleUser)
	o := placeOrder(t, s, u)
	body := map[string]any{"status": "failed", "message": "Invalid transaction or Transaction not found", "data": nil}
	gw := &fakeGateway{verifyResp: body}

	out, err := newPayment(s, gw).Verify(context.Background(), o.ID, services.NewTxRef(o.ID))
	require.NoError(t, err)
	assert.Equal(t, body, out)

	still, err := s.orders.GetOrder(o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, still.PaymentStatus)
}

func TestVerifyTransportErrorBecomesFailedPayload(t *testing.T) {
	s := newShop(t)
	u := s.user(t, "Offline", entity.RoleUser)
	o := placeOrder(t, s, u)
	gw := &fakeGateway{verifyErr: errors.New("dial tcp: connection refused")}

	out, err := newPayment(s, gw).Verify(context.Background(), o.ID, services.NewTxRef(o.ID))
	require.NoError(t, err)
	assert.Equal(t, "failed", out["status"])
	assert.Equal(t, "dial tcp: connection refused", out["message"])
}

func TestNewTxRefFormat(t *testing.T) {
	ref := services.NewTxRef(7)
	assert.Regexp(t, regexp.MustCompile(`^FEN-7-[0-9a-f]{12}$`), ref)
	assert.NotEqual(t, ref, services.NewTxRef(7))
}

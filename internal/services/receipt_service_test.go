package services

import (
	"testing"

	"memberhub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceipt_RenderHTML(t *testing.T) {
	env := newTestEnv(t)
	biz, _ := env.registerBusiness(t, "owner@gym.test")
	other, _ := env.registerBusiness(t, "other@gym.test")
	m := env.createMembership(t, biz, env.createMember(t, biz, "Ann", "<b>Lee</b>"), env.createPlan(t, biz, "29.99", 30), jan1)
	p := env.pay(t, biz, m.ID, "10")

	html, err := env.svc.ReceiptService.RenderHTML(env.ctx, env.db, biz, p.ID)
	require.NoError(t, err)
	body := string(html)
	assert.Contains(t, body, "Payment Receipt")
	assert.Contains(t, body, "10.00 USD")
	assert.Contains(t, body, "Ann &lt;b&gt;Lee&lt;/b&gt;", "member names are escaped")
	assert.Contains(t, body, "Cash")

	_, err = env.svc.ReceiptService.RenderHTML(env.ctx, env.db, other, p.ID)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)

	link, err := env.svc.ReceiptService.ShareableLink(env.ctx, env.db, biz, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/receipts/"+p.ID+"/html", link.URL)
}

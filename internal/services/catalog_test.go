package services

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"oneasy-portal/dto"
	"oneasy-portal/internal/auth"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/models"
	"oneasy-portal/internal/testutil"
	"oneasy-portal/internal/viewmode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestNoticesTargeting(t *testing.T) {
	svc := NewNoticeService(testutil.NewNotices())
	ctx := context.Background()
	admin := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleAdmin}
	asha := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleClient}
	ravi := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleClient}

	_, err := svc.Create(ctx, admin, dto.NoticeRequest{Title: "GST due", Description: "File GSTR-3B by the 20th"})
	require.NoError(t, err)
	target := asha.UserID.Hex()
	personal, err := svc.Create(ctx, admin, dto.NoticeRequest{Title: "Docs", Description: "Upload PAN", Link: "https://oneasy.in/docs", ClientID: &target})
	require.NoError(t, err)

	got, err := svc.ForActor(ctx, asha)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	got, err = svc.ForActor(ctx, ravi)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	updated, err := svc.Update(ctx, personal.ID.Hex(), dto.NoticeRequest{Title: "Docs", Description: "Upload PAN and Aadhaar"})
	require.NoError(t, err)
	assert.Nil(t, updated.ClientID)
	got, _ = svc.ForActor(ctx, ravi)
	assert.Len(t, got, 2)

	require.NoError(t, svc.Delete(ctx, personal.ID.Hex()))
	assert.ErrorIs(t, svc.Delete(ctx, personal.ID.Hex()), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "zzz"), ErrNotFound)
}

func TestNoticeValidation(t *testing.T) {
	svc := NewNoticeService(testutil.NewNotices())
	_, err := svc.Create(context.Background(), Actor{Role: viewmode.RoleAdmin}, dto.NoticeRequest{Title: "x", Description: "y", Link: "javascript:alert(1)"})
	assert.Error(t, err)
	_, err = svc.Create(context.Background(), Actor{Role: viewmode.RoleAdmin}, dto.NoticeRequest{})
	assert.Error(t, err)
}

func TestPay(t *testing.T) {
	catalog := []models.Package{
		{ID: "gst-basic", Kind: forms.GST, Name: "Basic", Price: 1499},
		{ID: "si-basic", Kind: forms.StartupIndia, Name: "Basic", Price: 2999},
	}
	payments := testutil.NewPayments()
	svc := NewPaymentService(catalog, payments)

	assert.Len(t, svc.Packages(""), 2)
	assert.Len(t, svc.Packages(forms.GST), 1)

	actor := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleClient}
	pay, pkg, err := svc.Pay(context.Background(), actor, "gst-basic")
	require.NoError(t, err)
	assert.Equal(t, int64(1499), pay.Amount)
	assert.Equal(t, models.PaymentPaid, pay.Status)
	assert.Equal(t, "gst-basic", pkg.ID)
	assert.True(t, strings.HasPrefix(pay.PaymentID, "pay_"))

	stored, err := payments.FindByID(context.Background(), pay.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, actor.UserID, stored.UserID)

	_, _, err = svc.Pay(context.Background(), actor, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDocumentsStoreSignOpen(t *testing.T) {
	dir := t.TempDir()
	svc := NewDocumentService(dir, auth.NewURLSigner("doc-secret", "http://portal.test", time.Minute))
	ctx := context.Background()
	owner := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleClient}

	ref, err := svc.Store(owner.UserID, "../../PAN card.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "doc://"+owner.UserID.Hex()+"/"), ref)
	assert.True(t, strings.HasSuffix(ref, "/PAN_card.pdf"), ref)
	uploader, err := svc.Uploader(ref)
	require.NoError(t, err)
	assert.Equal(t, owner.UserID, uploader)

	link, exp, err := svc.Sign(ctx, owner, ref, nil)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/documents/view", u.Path)

	path, err := svc.Open(u.Query().Get("token"))
	require.NoError(t, err)
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(body))

	_, err = svc.Open("garbage")
	assert.ErrorIs(t, err, ErrForbidden)

	_, _, err = svc.Sign(ctx, owner, " ", nil)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestDocumentsSignOnlyReadableReferences(t *testing.T) {
	svc := NewDocumentService(t.TempDir(), auth.NewURLSigner("doc-secret", "", time.Minute))
	ctx := context.Background()
	owner := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleClient}
	other := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleClient}
	admin := Actor{UserID: bson.NewObjectID(), Role: viewmode.RoleAdmin}

	ref, err := svc.Store(owner.UserID, "pan.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)

	for _, bad := range []string{
		"https://cdn.example.com/pan.pdf",
		"http://evil.example/phish",
		"doc://not-hex/" + "0b5e4d2a-6f4c-4c8e-9a51-0a7c1e0d9f11/pan.pdf",
		"doc://" + owner.UserID.Hex() + "/../pan.pdf",
		"doc://" + owner.UserID.Hex() + "/pan.pdf",
	} {
		_, _, err := svc.Sign(ctx, admin, bad, nil)
		assert.ErrorIs(t, err, ErrBadRequest, bad)
	}

	_, _, err = svc.Sign(ctx, other, ref, nil)
	assert.ErrorIs(t, err, ErrForbidden)
	_, _, err = svc.Sign(ctx, other, ref, func(context.Context, string) (bool, error) { return false, nil })
	assert.ErrorIs(t, err, ErrForbidden)

	var asked string
	_, _, err = svc.Sign(ctx, other, ref, func(_ context.Context, r string) (bool, error) {
		asked = r
		return true, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, ref, asked)

	_, _, err = svc.Sign(ctx, admin, ref, nil)
	assert.NoError(t, err)
}

func TestDocumentsOpenRejectsExternalTokens(t *testing.T) {
	signer := auth.NewURLSigner("doc-secret", "", time.Minute)
	svc := NewDocumentService(t.TempDir(), signer)

	// a token for an external location, signed with the right key, still
	// never turns into a redirect
	link, _, err := signer.Sign("https://cdn.example.com/pan.pdf")
	require.NoError(t, err)
	u, err := url.Parse(link)
	require.NoError(t, err)
	_, err = svc.Open(u.Query().Get("token"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTicketFormat(t *testing.T) {
	id := NewTicketID(forms.PrivateLimited, time.Date(2026, 10, 16, 23, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^PVT_20261016_[0-9A-F]{8}$`, id)
	assert.True(t, forms.PrivateLimited.OwnsTicket(id))
}

func TestOrganizations(t *testing.T) {
	svc := NewOrganizationService(testutil.NewOrganizations())
	ctx := context.Background()
	_, err := svc.CreateOrganization(ctx, dto.OrganizationRequest{})
	assert.Error(t, err)

	org, err := svc.CreateOrganization(ctx, dto.OrganizationRequest{UserID: "u1", Name: "Acme", GSTIN: "27abcde1234f1z5"})
	require.NoError(t, err)
	assert.Equal(t, "27ABCDE1234F1Z5", org.GSTIN)

	_, err = svc.CreateDirector(ctx, dto.DirectorRequest{OrganizationUserID: "u1", Name: "Ravi", Phone: "123"})
	assert.Error(t, err)
	_, err = svc.CreateDirector(ctx, dto.DirectorRequest{OrganizationUserID: "u1", Name: "Ravi", Phone: "9876543210"})
	require.NoError(t, err)
	ds, err := svc.Directors(ctx)
	require.NoError(t, err)
	assert.Len(t, ds, 1)
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david-mangena/e-commerce-site/internal/models"
)

func TestCartService_Login(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "standard user", username: "standard_user", password: "secret_sauce"},
		{name: "visual user", username: "visual_user", password: "secret_sauce"},
		{name: "locked out user", username: "locked_out_user", password: "secret_sauce", wantErr: ErrLockedOut},
		{name: "missing username", username: "", password: "secret_sauce", wantErr: ErrUsernameRequired},
		{name: "missing password", username: "standard_user", password: "", wantErr: ErrPasswordRequired},
		{name: "wrong password", username: "standard_user", password: "nope", wantErr: ErrBadCredentials},
		{name: "unknown user", username: "nobody", password: "secret_sauce", wantErr: ErrBadCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCartService(0, nil)

			session, err := svc.Login(tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, session)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, session.ID)
			assert.Equal(t, tt.username, session.Username)
		})
	}
}

func TestCartService_LoginDelay(t *testing.T) {
	svc := NewCartService(2*time.Second, nil)

	assert.Equal(t, 2*time.Second, svc.LoginDelay("performance_glitch_user"))
	assert.Zero(t, svc.LoginDelay("standard_user"))
}

func TestCartService_Cart(t *testing.T) {
	svc := NewCartService(0, nil)
	session, err := svc.Login("standard_user", "secret_sauce")
	require.NoError(t, err)

	require.NoError(t, svc.AddToCart(session.ID, "sauce-labs-backpack"))
	require.NoError(t, svc.AddToCart(session.ID, "sauce-labs-backpack"))
	require.NoError(t, svc.AddToCart(session.ID, "sauce-labs-bike-light"))
	assert.ErrorIs(t, svc.AddToCart(session.ID, "does-not-exist"), ErrUnknownProduct)
	assert.ErrorIs(t, svc.AddToCart("no-session", "sauce-labs-backpack"), ErrNoSession)

	current, err := svc.Session(session.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"sauce-labs-backpack", "sauce-labs-bike-light"}, current.Cart)

	require.NoError(t, svc.RemoveFromCart(session.ID, "sauce-labs-backpack"))

	current, err = svc.Session(session.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"sauce-labs-bike-light"}, current.Cart)
}

func TestCartService_Summary(t *testing.T) {
	svc := NewCartService(0, nil)
	session, err := svc.Login("standard_user", "secret_sauce")
	require.NoError(t, err)

	for _, id := range []string{
		"sauce-labs-backpack",
		"sauce-labs-bike-light",
		"sauce-labs-bolt-t-shirt",
		"sauce-labs-fleece-jacket",
	} {
		require.NoError(t, svc.AddToCart(session.ID, id))
	}

	summary, err := svc.Summary(session.ID)
	require.NoError(t, err)

	assert.Len(t, summary.Items, 4)
	assert.Equal(t, int64(10596), summary.SubtotalCents)
	assert.Equal(t, int64(848), summary.TaxCents)
	assert.Equal(t, "$114.44", models.FormatCents(summary.TotalCents))
}

func TestCartService_SetCheckoutInfo(t *testing.T) {
	info := CheckoutInfo{FirstName: "John", LastName: "Doe", PostalCode: "12345"}

	tests := []struct {
		name     string
		username string
		info     CheckoutInfo
		wantErr  error
	}{
		{name: "complete form", username: "standard_user", info: info},
		{name: "missing first name", username: "standard_user", info: CheckoutInfo{LastName: "Doe", PostalCode: "12345"}, wantErr: ErrFirstNameRequired},
		{name: "missing postal code", username: "standard_user", info: CheckoutInfo{FirstName: "John", LastName: "Doe"}, wantErr: ErrPostalCodeRequired},
		{name: "problem user loses last name", username: "problem_user", info: info, wantErr: ErrLastNameRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCartService(0, nil)
			session, err := svc.Login(tt.username, "secret_sauce")
			require.NoError(t, err)

			err = svc.SetCheckoutInfo(session.ID, tt.info)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			current, err := svc.Session(session.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.info, current.Info)
		})
	}
}

func TestCartService_Finish(t *testing.T) {
	svc := NewCartService(0, nil)

	standard, err := svc.Login("standard_user", "secret_sauce")
	require.NoError(t, err)
	require.NoError(t, svc.AddToCart(standard.ID, "sauce-labs-onesie"))
	require.NoError(t, svc.Finish(standard.ID))

	current, err := svc.Session(standard.ID)
	require.NoError(t, err)
	assert.Empty(t, current.Cart)

	broken, err := svc.Login("error_user", "secret_sauce")
	require.NoError(t, err)
	require.NoError(t, svc.AddToCart(broken.ID, "sauce-labs-onesie"))
	assert.ErrorIs(t, svc.Finish(broken.ID), ErrCheckoutFailed)

	current, err = svc.Session(broken.ID)
	require.NoError(t, err)
	assert.Len(t, current.Cart, 1)
}

func TestCartService_Logout(t *testing.T) {
	svc := NewCartService(0, nil)
	session, err := svc.Login("standard_user", "secret_sauce")
	require.NoError(t, err)

	svc.Logout(session.ID)

	_, err = svc.Session(session.ID)
	assert.ErrorIs(t, err, ErrNoSession)
}

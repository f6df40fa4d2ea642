package testutil

import (
	"testing"
	"time"

	"medizy/pkg/client"
	"medizy/pkg/middleware"
	"medizy/pkg/model"

	"github.com/golang-jwt/jwt/v5"
)

// Token signs a bearer token for actor the way the auth service does.
func (e *TestEnv) Token(t *testing.T, actor model.Actor) string {
	t.Helper()

	claims := middleware.Claims{
		ID:   actor.ID,
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(e.JWTSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

// Clients bundles one caller's view of the three services.
type Clients struct {
	Appointments  *client.AppointmentClient
	Doctors       *client.DoctorClient
	Notifications *client.NotificationClient
}

func (e *TestEnv) ClientsFor(t *testing.T, actor model.Actor) *Clients {
	t.Helper()
	token := e.Token(t, actor)
	return &Clients{
		Appointments:  client.NewAppointmentClient(client.NewHttpClient(e.AppointmentsURL).WithToken(token)),
		Doctors:       client.NewDoctorClient(client.NewHttpClient(e.DoctorsURL).WithToken(token)),
		Notifications: client.NewNotificationClient(client.NewHttpClient(e.NotificationsURL).WithToken(token)),
	}
}

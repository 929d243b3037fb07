package authz

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, mode Mode) *Service {
	t.Helper()
	root := "testdata"
	svc, err := NewService(Config{
		ModelPath:  filepath.Join(root, "model.conf"),
		PolicyPath: filepath.Join(root, "policy.csv"),
		Mode:       mode,
	})
	require.NoError(t, err)
	return svc
}

func TestServiceAuthorize(t *testing.T) {
	svc := newTestService(t, ModeEnforce)
	req := NewRequest(
		SubjectForPerson(uuid.MustParse("f6f8b13e-755f-41e0-af1a-f2671e40c15c")),
		"sales.deals",
		"create",
	)
	require.NoError(t, svc.Authorize(context.Background(), req))
}

func TestServiceAuthorizeDenied(t *testing.T) {
	svc := newTestService(t, ModeEnforce)
	req := NewRequest(SubjectForPerson(uuid.New()), "sales.deals", "create")
	require.Error(t, svc.Authorize(context.Background(), req))
}

func TestServiceShadowModeAllowsDeniedRequests(t *testing.T) {
	svc := newTestService(t, ModeShadow)
	req := NewRequest(SubjectForPerson(uuid.New()), "sales.deals", "create")
	require.NoError(t, svc.Authorize(context.Background(), req))
}

func TestServiceDisabledModeSkipsEnforcement(t *testing.T) {
	svc := newTestService(t, ModeDisabled)
	req := NewRequest(SubjectForPerson(uuid.New()), "org.persons", "delete")
	require.NoError(t, svc.Authorize(context.Background(), req))
}

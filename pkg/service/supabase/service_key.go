package supabase

import (
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/domain/model"
)

const serviceRole = "service_role"

// CheckServiceKey rejects JWT-shaped keys that are expired or not issued for the
// service role. Opaque secret keys are accepted as-is. The signature is not verified
// here; the backend does that on every request.
func CheckServiceKey(key string) error {
	if strings.Count(key, ".") != 2 {
		return nil
	}

	token, err := jwt.ParseString(key,
		jwt.WithVerify(false),
		jwt.WithValidate(true),
	)
	if err != nil {
		return goerr.Wrap(err, "invalid service role key", goerr.T(model.ErrTagSetup))
	}

	role, ok := token.Get("role")
	if !ok {
		return goerr.New("service role key has no role claim", goerr.T(model.ErrTagSetup))
	}
	if role != serviceRole {
		return goerr.New("service role key is not issued for the service role",
			goerr.V("role", role),
			goerr.T(model.ErrTagSetup))
	}

	return nil
}

package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/craftplan/craftplan/pkg/db"
	"github.com/craftplan/craftplan/pkg/proto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var bootstrapCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "craftplan",
	Subsystem: "bootstrap",
	Name:      "users_total",
	Help:      "The total number of user bootstrap calls by outcome",
}, []string{"outcome"})

// ErrMissingExternalID is returned when an identity has no external id.
var ErrMissingExternalID = errors.New("identity has no external id")

// EnsureUser returns the user for the given identity, creating the user,
// their personal organization, and its owner membership on first sight.
// Concurrent calls for the same identity collapse into one bootstrap, and a
// race lost against another instance falls back to the winner's row. The
// call is idempotent, an existing user is returned unchanged.
func (b *Backend) EnsureUser(ctx context.Context, identity proto.Identity) (proto.User, error) {
	if identity.ExternalID == "" {
		return nil, ErrMissingExternalID
	}

	v, err, _ := b.group.Do(identity.ExternalID, func() (interface{}, error) {
		return b.bootstrapUser(ctx, identity)
	})
	if err != nil {
		return nil, err
	}

	return v.(proto.User), nil //nolint:forcetypeassert
}

func (b *Backend) bootstrapUser(ctx context.Context, identity proto.Identity) (proto.User, error) {
	m, err := b.store.FindUserByExternalID(ctx, b.db, identity.ExternalID)
	if err == nil {
		bootstrapCounter.WithLabelValues("existing").Inc()
		return &user{user: m}, nil
	}
	if !errors.Is(db.WrapError(err), db.ErrRecordNotFound) {
		return nil, err
	}

	err = b.db.TransactionContext(ctx, func(tx *db.Tx) error {
		var err error
		m, err = b.store.CreateUser(ctx, tx, identity)
		if err != nil {
			return err
		}

		org, err := b.store.CreateOrg(ctx, tx, personalOrgName(identity))
		if err != nil {
			return err
		}

		if err := b.store.AddOrgMember(ctx, tx, org.ID, m.ID, proto.RoleOwner); err != nil {
			return err
		}

		if m.Email != "" {
			if _, err := b.store.LinkContactsToUserByEmail(ctx, tx, m.ID, m.Email); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		// Another instance may have bootstrapped the same identity, the
		// unique constraint on external_id is the backstop.
		if errors.Is(db.WrapError(err), db.ErrDuplicateKey) {
			m, err = b.store.FindUserByExternalID(ctx, b.db, identity.ExternalID)
			if err != nil {
				return nil, err
			}

			bootstrapCounter.WithLabelValues("conflict").Inc()
			return &user{user: m}, nil
		}
		return nil, err
	}

	b.logger.Info("bootstrapped user", "user", m.ID, "external_id", identity.ExternalID)
	bootstrapCounter.WithLabelValues("created").Inc()
	b.cache.Purge()

	return &user{user: m}, nil
}

func personalOrgName(identity proto.Identity) string {
	name := strings.TrimSpace(identity.FirstName + " " + identity.LastName)
	if name == "" {
		name = identity.Email
	}
	if name == "" {
		name = identity.ExternalID
	}
	return fmt.Sprintf("%s's Organization", name)
}

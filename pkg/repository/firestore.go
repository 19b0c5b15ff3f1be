package repository

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/domain/interfaces"
	"github.com/secmon-lab/kadr/pkg/domain/model"
	"github.com/secmon-lab/kadr/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	userRolesCollection = "user_roles"

	fieldUserID = "user_id"
)

// Firestore implements RoleRepository with Firestore
type Firestore struct {
	client *firestore.Client
}

var _ interfaces.RoleRepository = (*Firestore)(nil)

// NewFirestore creates a new Firestore role repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on a wrong project or missing permissions. An empty collection is fine.
	_, err = client.Collection(userRolesCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{
		client: client,
	}, nil
}

// AssignRole creates the (user, role) document. An existing pair is rejected.
func (f *Firestore) AssignRole(ctx context.Context, userID types.UserID, role types.Role) error {
	if userID == "" {
		return goerr.New("user ID is empty", goerr.T(model.ErrTagRoleAssignment))
	}
	if !role.IsValid() {
		return goerr.New("invalid role",
			goerr.V("role", role),
			goerr.T(model.ErrTagRoleAssignment))
	}

	assignment := model.NewRoleAssignment(userID, role)
	_, err := f.client.Collection(userRolesCollection).Doc(assignment.Key()).Create(ctx, assignment)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.New("duplicate key value violates unique constraint",
				goerr.V("userID", userID),
				goerr.V("role", role),
				goerr.T(model.ErrTagRoleAssignment),
				goerr.T(model.ErrTagDuplicateRole))
		}
		return goerr.Wrap(err, "failed to save role assignment to firestore",
			goerr.V("userID", userID),
			goerr.V("role", role),
			goerr.T(model.ErrTagRoleAssignment))
	}

	return nil
}

// ListRoleAssignments returns the roles of a user ordered by creation time
func (f *Firestore) ListRoleAssignments(ctx context.Context, userID types.UserID) ([]*model.RoleAssignment, error) {
	if userID == "" {
		return nil, goerr.New("user ID is empty")
	}

	// Sorted in memory to avoid requiring a composite index
	iter := f.client.Collection(userRolesCollection).
		Where(fieldUserID, "==", userID.String()).
		Documents(ctx)
	defer iter.Stop()

	var result []*model.RoleAssignment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate role assignments",
				goerr.V("userID", userID))
		}

		var assignment model.RoleAssignment
		if err := doc.DataTo(&assignment); err != nil {
			return nil, goerr.Wrap(err, "failed to decode role assignment",
				goerr.V("docID", doc.Ref.ID))
		}
		result = append(result, &assignment)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	return f.client.Close()
}

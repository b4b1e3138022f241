package storage

import (
	"context"
	"time"

	"github.com/veridex/carbon-ledger/pkg/models"
)

// VerificationUpdate carries the admin-editable verification metadata of a
// project. Nil fields are left untouched. Compliance flags that flip to true
// are stamped with a signing timestamp by the store.
type VerificationUpdate struct {
	RegistryName            *string
	RegistryProjectID       *string
	OwnershipProofURL       *string
	PCNDocumentURL          *string
	OwnershipProofSigned    *bool
	NoHarmDeclarationSigned *bool
	MandateSigned           *bool
}

// Empty reports whether the update would touch nothing.
func (u VerificationUpdate) Empty() bool {
	return u.RegistryName == nil && u.RegistryProjectID == nil &&
		u.OwnershipProofURL == nil && u.PCNDocumentURL == nil &&
		u.OwnershipProofSigned == nil && u.NoHarmDeclarationSigned == nil &&
		u.MandateSigned == nil
}

// ProjectReader defines the read side of project access.
type ProjectReader interface {
	// GetProject retrieves a project by its ID.
	GetProject(ctx context.Context, projectID string) (*models.Project, error)

	// ListProjects retrieves all projects.
	ListProjects(ctx context.Context) ([]models.Project, error)

	// ListProjectsByOwner retrieves the projects registered by one owner.
	ListProjectsByOwner(ctx context.Context, ownerID string) ([]models.Project, error)

	// SummarizeProject computes the server-side ledger aggregate for one
	// project (credits sold, retired, sales volume).
	SummarizeProject(ctx context.Context, projectID string) (*models.ProjectSummary, error)
}

// ProjectWriter defines the mutations the certification workflow performs.
type ProjectWriter interface {
	// CreateProject persists a registration submission (status application).
	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)

	// TransitionProject moves a project from its snapshot status to the given
	// target, guarded by a status+version conditional write. A lost race
	// surfaces as ErrVersionConflict. The reason is persisted for rejections;
	// at stamps validation/audit/retirement dates where the target calls for it.
	TransitionProject(ctx context.Context, project *models.Project, to models.ProjectStatus, reason string, at time.Time) (*models.Project, error)

	// UpdateVerification applies admin verification metadata to a project.
	UpdateVerification(ctx context.Context, projectID string, update VerificationUpdate, at time.Time) (*models.Project, error)
}

// ProjectStore combines project reads and certification writes.
type ProjectStore interface {
	ProjectReader
	ProjectWriter
}

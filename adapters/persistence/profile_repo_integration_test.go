package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/trafylabs/academy-api/internal/domain/profile"
	"github.com/trafylabs/academy-api/internal/domain/user"
	"github.com/trafylabs/academy-api/pkg/logger"
)

type ProfileRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	testLogger  logger.Logger
	profileRepo profile.Repository
	userRepo    user.Repository
	testUser    *user.User
}

func (s *ProfileRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	m, err := migrate.New("file://../../migrations", dsn)
	if err != nil {
		s.T().Fatalf("Failed to create migrate instance: %s", err)
	}
	if err := m.Up(); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	s.testLogger = logger.NewNop()
	s.profileRepo = NewPostgresProfileRepo(s.dbPool, s.testLogger)
	s.userRepo = NewPostgresUserRepo(s.dbPool)

	s.testUser = &user.User{
		ID:           uuid.New(),
		Email:        "student@example.com",
		PasswordHash: "hashedpassword",
	}
	if err := s.userRepo.Save(ctx, s.testUser); err != nil {
		s.T().Fatalf("Failed to seed user: %s", err)
	}
}

func (s *ProfileRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func TestProfileRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(ProfileRepoIntegrationTestSuite))
}

func (s *ProfileRepoIntegrationTestSuite) Test_Get_MissingRecord() {
	_, err := s.profileRepo.Get(context.Background(), uuid.New())
	s.ErrorIs(err, profile.ErrRecordNotFound)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Set_And_Get() {
	ctx := context.Background()

	rec := &profile.Record{
		UID:       s.testUser.ID,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     s.testUser.Email,
		Phone:     "(555) 123-4567",
		Country:   "India",
	}
	s.NoError(s.profileRepo.Set(ctx, rec))

	found, err := s.profileRepo.Get(ctx, s.testUser.ID)
	s.NoError(err)
	s.Equal("Jane", found.FirstName)
	s.Equal("Doe", found.LastName)
	s.Equal(s.testUser.Email, found.Email)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Update_PartialPatch() {
	ctx := context.Background()

	rec := &profile.Record{
		UID:       s.testUser.ID,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     s.testUser.Email,
		Country:   "India",
	}
	s.NoError(s.profileRepo.Set(ctx, rec))

	newPhone := "555-987-6543"
	newPic := "https://cdn.example.com/profilePictures/pic.png"
	err := s.profileRepo.Update(ctx, s.testUser.ID, profile.Patch{
		Phone:         &newPhone,
		ProfilePicURL: &newPic,
	})
	s.NoError(err)

	found, err := s.profileRepo.Get(ctx, s.testUser.ID)
	s.NoError(err)
	s.Equal(newPhone, found.Phone)
	s.Equal(newPic, found.ProfilePicURL)
	// untouched fields keep their stored value
	s.Equal("Jane", found.FirstName)
	s.Equal("India", found.Country)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Update_UnknownUID() {
	first := "Ghost"
	err := s.profileRepo.Update(context.Background(), uuid.New(), profile.Patch{FirstName: &first})
	s.Error(err)
}

func (s *ProfileRepoIntegrationTestSuite) Test_Update_EmptyPatchIsNoop() {
	s.NoError(s.profileRepo.Update(context.Background(), s.testUser.ID, profile.Patch{}))
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	auth     *AuthService
	guard    *OwnershipGuard
	projects *ProjectService
	tasks    *TaskService
	comments *CommentService
}

func newTestEnv(t *testing.T, suggester TaskSuggester) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// every pooled connection to :memory: would be a separate database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}, &models.Task{}, &models.Comment{}))

	utils.SetJWTSecret("test-secret")

	projectRepo := repository.NewProjectRepository(db)
	guard := NewOwnershipGuard(projectRepo)

	return testEnv{
		db:       db,
		auth:     NewAuthService(repository.NewUserRepository(db), 24*time.Hour),
		guard:    guard,
		projects: NewProjectService(projectRepo, guard),
		tasks:    NewTaskService(repository.NewTaskRepository(db), guard, suggester),
		comments: NewCommentService(repository.NewCommentRepository(db), guard),
	}
}

func (e testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := e.auth.Register(RegisterInput{
		Username: username,
		Email:    username + "@x.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	return user
}

func (e testEnv) createProject(t *testing.T, title string, ownerID uint64) *models.Project {
	t.Helper()
	project, err := e.projects.CreateProject(ProjectInput{Title: title, Description: "D"}, ownerID)
	require.NoError(t, err)
	return project
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

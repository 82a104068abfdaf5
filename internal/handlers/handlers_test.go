package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/database"
	"github.com/yukikurage/project-tracker-api/internal/dto"
	"github.com/yukikurage/project-tracker-api/internal/repository"
	"github.com/yukikurage/project-tracker-api/internal/services"
	"github.com/yukikurage/project-tracker-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// HandlerTestSuite drives the full router against an in-memory database.
type HandlerTestSuite struct {
	suite.Suite
	db        *gorm.DB
	handlers  Handlers
	router    *gin.Engine
	uploadDir string
}

// SetupTest runs before each test
func (suite *HandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	// Run migrations
	database.SetDB(suite.db)
	suite.Require().NoError(database.Migrate())

	utils.SetJWTSecret("handler-test-secret")

	projectRepo := repository.NewProjectRepository(suite.db)
	guard := services.NewOwnershipGuard(projectRepo)
	suite.uploadDir = filepath.Join(suite.T().TempDir(), "uploads")

	suite.handlers = Handlers{
		Auth:    NewAuthHandler(services.NewAuthService(repository.NewUserRepository(suite.db), constants.TokenTTL)),
		Project: NewProjectHandler(services.NewProjectService(projectRepo, guard), guard),
		Task:    NewTaskHandler(services.NewTaskService(repository.NewTaskRepository(suite.db), guard, nil), guard),
		Comment: NewCommentHandler(services.NewCommentService(repository.NewCommentRepository(suite.db), guard), guard),
		Upload:  NewUploadHandler(services.NewUploadService(suite.uploadDir, 1<<20)),
	}

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	RegisterRoutes(suite.router, suite.handlers, suite.uploadDir)
}

// TearDownTest runs after each test
func (suite *HandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *HandlerTestSuite) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder, v any) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// signup registers a user and returns a bearer token for it.
func (suite *HandlerTestSuite) signup(username string) string {
	w := suite.do(http.MethodPost, "/api/auth/register", gin.H{
		"username": username,
		"email":    username + "@x.com",
		"password": "secret1",
	}, "")
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, "/api/auth/login", gin.H{
		"email":    username + "@x.com",
		"password": "secret1",
	}, "")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	suite.decode(w, &resp)
	return resp.Token
}

func (suite *HandlerTestSuite) createProject(token, title string) dto.ProjectDTO {
	w := suite.do(http.MethodPost, "/api/projects", gin.H{"title": title, "description": "D"}, token)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var project dto.ProjectDTO
	suite.decode(w, &project)
	return project
}

func (suite *HandlerTestSuite) createTask(token string, projectID uint64, body gin.H) dto.TaskDTO {
	w := suite.do(http.MethodPost, projectPath("/api/tasks/project/", projectID), body, token)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var task dto.TaskDTO
	suite.decode(w, &task)
	return task
}

func (suite *HandlerTestSuite) assertError(w *httptest.ResponseRecorder, status int, code, message string) {
	suite.Equal(status, w.Code, w.Body.String())

	var resp map[string]any
	suite.decode(w, &resp)
	suite.Equal(code, resp["code"])
	if message != "" {
		suite.Equal(message, resp["message"])
	}
}

func projectPath(prefix string, id uint64, rest ...string) string {
	return prefix + idString(id) + strings.Join(rest, "")
}

func idString(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestProtectedRoutesRequireToken() {
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/projects"},
		{http.MethodPost, "/api/projects"},
		{http.MethodGet, "/api/projects/1"},
		{http.MethodPut, "/api/projects/1"},
		{http.MethodDelete, "/api/projects/1"},
		{http.MethodGet, "/api/tasks/project/1"},
		{http.MethodPost, "/api/tasks/project/1"},
		{http.MethodPost, "/api/tasks/project/1/suggest"},
		{http.MethodPut, "/api/tasks/project/1/task/1"},
		{http.MethodDelete, "/api/tasks/project/1/task/1"},
		{http.MethodGet, "/api/comments/project/1"},
		{http.MethodPost, "/api/comments/project/1"},
		{http.MethodDelete, "/api/comments/project/1/comment/1"},
		{http.MethodPost, "/api/upload"},
	}

	expired, err := utils.GenerateToken(1, "ana", "ana@x.com", -time.Minute)
	suite.Require().NoError(err)

	for _, rt := range routes {
		for _, token := range []string{"", "garbage", expired} {
			w := suite.do(rt.method, rt.path, nil, token)
			suite.Equal(http.StatusUnauthorized, w.Code, "%s %s token=%q", rt.method, rt.path, token)
		}
	}
}

func (suite *HandlerTestSuite) TestHandlerWithoutIdentity() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/projects", nil)

	suite.handlers.Project.ListProjects(c)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestHandlerReadsIdentityFromContext() {
	token := suite.signup("ana")
	project := suite.createProject(token, "T")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/projects/x", nil)
	c.Params = gin.Params{{Key: "id", Value: idString(project.ID)}}
	c.Set(constants.ContextKeyUserID, project.UserID)

	suite.handlers.Project.GetProject(c)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) TestRegisterAndLogin() {
	w := suite.do(http.MethodPost, "/api/auth/register", gin.H{
		"username": "ana", "email": "ana@x.com", "password": "secret1",
	}, "")
	suite.Equal(http.StatusCreated, w.Code)
	var msg dto.MessageResponse
	suite.decode(w, &msg)
	suite.Equal("Usuario registrado correctamente", msg.Message)

	w = suite.do(http.MethodPost, "/api/auth/register", gin.H{
		"username": "ana", "email": "other@x.com", "password": "secret1",
	}, "")
	suite.assertError(w, http.StatusBadRequest, "CONFLICT", "Usuario o email ya existe")

	w = suite.do(http.MethodPost, "/api/auth/register", gin.H{"username": "bob"}, "")
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Todos los campos son requeridos")

	w = suite.do(http.MethodPost, "/api/auth/login", gin.H{"email": "ana@x.com", "password": "secret1"}, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), "password")
	var login dto.LoginResponse
	suite.decode(w, &login)
	suite.NotEmpty(login.Token)
	suite.Equal("ana", login.User.Username)
	suite.Equal("ana@x.com", login.User.Email)

	wrong := suite.do(http.MethodPost, "/api/auth/login", gin.H{"email": "ana@x.com", "password": "nope-nope"}, "")
	unknown := suite.do(http.MethodPost, "/api/auth/login", gin.H{"email": "zoe@x.com", "password": "secret1"}, "")
	suite.assertError(wrong, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Credenciales invalidas")
	suite.assertError(unknown, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Credenciales invalidas")
}

func (suite *HandlerTestSuite) TestGetCurrentUser() {
	token := suite.signup("ana")

	w := suite.do(http.MethodGet, "/api/auth/me", nil, token)
	suite.Equal(http.StatusOK, w.Code)

	var user dto.UserDTO
	suite.decode(w, &user)
	suite.Equal("ana", user.Username)
}

func (suite *HandlerTestSuite) TestProjectScenario() {
	ana := suite.signup("ana")
	bob := suite.signup("bob")

	project := suite.createProject(ana, "T")
	suite.Equal("todo", string(project.Status))
	suite.Equal("medium", string(project.Priority))
	suite.NotNil(project.Links)

	w := suite.do(http.MethodGet, "/api/projects", nil, ana)
	suite.Equal(http.StatusOK, w.Code)
	var projects []dto.ProjectDTO
	suite.decode(w, &projects)
	suite.Len(projects, 1)
	suite.Equal(project.ID, projects[0].ID)

	w = suite.do(http.MethodGet, "/api/projects", nil, bob)
	suite.Equal("[]", w.Body.String())

	path := projectPath("/api/projects/", project.ID)
	suite.assertError(suite.do(http.MethodGet, path, nil, bob), http.StatusNotFound, "NOT_FOUND", "Proyecto no encontrado")
	suite.assertError(suite.do(http.MethodDelete, path, nil, bob), http.StatusNotFound, "NOT_FOUND", "Proyecto no encontrado")

	w = suite.do(http.MethodDelete, path, nil, ana)
	suite.Equal(http.StatusOK, w.Code)
	suite.assertError(suite.do(http.MethodGet, path, nil, ana), http.StatusNotFound, "NOT_FOUND", "")
}

func (suite *HandlerTestSuite) TestProjectValidation() {
	ana := suite.signup("ana")

	w := suite.do(http.MethodPost, "/api/projects", gin.H{"title": "T"}, ana)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Titulo y descripcion son requeridos")

	w = suite.do(http.MethodPost, "/api/projects", gin.H{"title": "T", "description": "D", "priority": "urgent"}, ana)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Prioridad invalida")

	suite.assertError(suite.do(http.MethodGet, "/api/projects/abc", nil, ana), http.StatusNotFound, "NOT_FOUND", "Proyecto no encontrado")
}

func (suite *HandlerTestSuite) TestUpdateProject() {
	ana := suite.signup("ana")
	bob := suite.signup("bob")
	project := suite.createProject(ana, "T")
	path := projectPath("/api/projects/", project.ID)

	w := suite.do(http.MethodPut, path, gin.H{
		"title":       "T2",
		"description": "D2",
		"status":      "in-progress",
		"links":       []gin.H{{"name": "repo", "url": "https://example.com"}},
	}, ana)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var updated dto.ProjectDTO
	suite.decode(w, &updated)
	suite.Equal("T2", updated.Title)
	suite.Equal("in-progress", string(updated.Status))
	suite.Len(updated.Links, 1)

	w = suite.do(http.MethodPut, path, gin.H{"title": "T", "description": "D", "status": "archived"}, ana)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "")

	w = suite.do(http.MethodPut, path, gin.H{"title": "T", "description": "D"}, bob)
	suite.assertError(w, http.StatusNotFound, "NOT_FOUND", "Proyecto no encontrado")
}

func (suite *HandlerTestSuite) TestTaskScenario() {
	ana := suite.signup("ana")
	project := suite.createProject(ana, "T")

	first := suite.createTask(ana, project.ID, gin.H{"title": "first"})
	task := suite.createTask(ana, project.ID, gin.H{"title": "buy milk"})
	suite.False(task.Completed)
	suite.Equal("medium", string(task.Priority))

	w := suite.do(http.MethodPut, projectPath("/api/tasks/project/", project.ID, "/task/", idString(task.ID)), gin.H{"completed": true}, ana)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var updated dto.TaskDTO
	suite.decode(w, &updated)
	suite.True(updated.Completed)
	suite.Equal("buy milk", updated.Title)

	w = suite.do(http.MethodGet, projectPath("/api/tasks/project/", project.ID), nil, ana)
	suite.Equal(http.StatusOK, w.Code)
	var tasks []dto.TaskDTO
	suite.decode(w, &tasks)
	suite.Require().Len(tasks, 2)
	suite.Equal(task.ID, tasks[0].ID)
	suite.True(tasks[0].Completed)
	suite.Equal(first.ID, tasks[1].ID)

	w = suite.do(http.MethodPost, projectPath("/api/tasks/project/", project.ID), gin.H{"description": "no title"}, ana)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Titulo es requerido")
}

func (suite *HandlerTestSuite) TestTaskDueDate() {
	ana := suite.signup("ana")
	project := suite.createProject(ana, "T")

	task := suite.createTask(ana, project.ID, gin.H{"title": "ship", "dueDate": "2030-01-02"})
	suite.Require().NotNil(task.DueDate)
	suite.Equal(2030, task.DueDate.Year())

	path := projectPath("/api/tasks/project/", project.ID, "/task/", idString(task.ID))

	w := suite.do(http.MethodPut, path, gin.H{"description": "release"}, ana)
	suite.Equal(http.StatusOK, w.Code)
	var updated dto.TaskDTO
	suite.decode(w, &updated)
	suite.Equal("ship", updated.Title)
	suite.NotNil(updated.DueDate)

	w = suite.do(http.MethodPut, path, gin.H{"dueDate": nil}, ana)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &updated)
	suite.Nil(updated.DueDate)

	w = suite.do(http.MethodPut, path, gin.H{"dueDate": "next tuesday"}, ana)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Fecha limite invalida")
}

func (suite *HandlerTestSuite) TestNestedIDsCheckProjectFirst() {
	ana := suite.signup("ana")
	bob := suite.signup("bob")
	project := suite.createProject(ana, "T")
	task := suite.createTask(ana, project.ID, gin.H{"title": "a"})

	for _, taskID := range []string{idString(task.ID), "999", "abc"} {
		path := projectPath("/api/tasks/project/", project.ID, "/task/", taskID)
		suite.assertError(suite.do(http.MethodPut, path, gin.H{"completed": true}, bob), http.StatusNotFound, "NOT_FOUND", "Proyecto no encontrado")
		suite.assertError(suite.do(http.MethodDelete, path, nil, bob), http.StatusNotFound, "NOT_FOUND", "Proyecto no encontrado")
	}

	for _, taskID := range []string{"999", "abc"} {
		path := projectPath("/api/tasks/project/", project.ID, "/task/", taskID)
		suite.assertError(suite.do(http.MethodPut, path, gin.H{"completed": true}, ana), http.StatusNotFound, "NOT_FOUND", "Tarea no encontrada")
		suite.assertError(suite.do(http.MethodDelete, path, nil, ana), http.StatusNotFound, "NOT_FOUND", "Tarea no encontrada")
	}

	path := projectPath("/api/comments/project/", project.ID, "/comment/abc")
	suite.assertError(suite.do(http.MethodDelete, path, nil, bob), http.StatusNotFound, "NOT_FOUND", "Proyecto no encontrado")
	suite.assertError(suite.do(http.MethodDelete, path, nil, ana), http.StatusNotFound, "NOT_FOUND", "Comentario no encontrado")

	suite.assertError(suite.do(http.MethodDelete, "/api/tasks/project/abc/task/1", nil, ana), http.StatusNotFound, "NOT_FOUND", "Proyecto no encontrado")
}

func (suite *HandlerTestSuite) TestDeleteTask() {
	ana := suite.signup("ana")
	project := suite.createProject(ana, "T")
	task := suite.createTask(ana, project.ID, gin.H{"title": "a"})
	path := projectPath("/api/tasks/project/", project.ID, "/task/", idString(task.ID))

	w := suite.do(http.MethodDelete, path, nil, ana)
	suite.Equal(http.StatusOK, w.Code)

	suite.assertError(suite.do(http.MethodDelete, path, nil, ana), http.StatusNotFound, "NOT_FOUND", "Tarea no encontrada")
}

func (suite *HandlerTestSuite) TestSuggestWithoutAIService() {
	ana := suite.signup("ana")
	project := suite.createProject(ana, "T")
	path := projectPath("/api/tasks/project/", project.ID, "/suggest")

	w := suite.do(http.MethodPost, path, gin.H{"text": "call the designer"}, ana)
	suite.assertError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "")

	w = suite.do(http.MethodPost, path, gin.H{"text": ""}, ana)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Texto es requerido")
}

func (suite *HandlerTestSuite) TestComments() {
	ana := suite.signup("ana")
	project := suite.createProject(ana, "T")
	base := projectPath("/api/comments/project/", project.ID)

	w := suite.do(http.MethodPost, base, gin.H{"content": "first"}, ana)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var first dto.CommentDTO
	suite.decode(w, &first)
	suite.Equal("ana", first.Author.Username)

	w = suite.do(http.MethodPost, base, gin.H{"content": "second"}, ana)
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.do(http.MethodPost, base, gin.H{"content": "  "}, ana)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Contenido es requerido")

	w = suite.do(http.MethodGet, base, nil, ana)
	suite.Equal(http.StatusOK, w.Code)
	var comments []dto.CommentDTO
	suite.decode(w, &comments)
	suite.Require().Len(comments, 2)
	suite.Equal("second", comments[0].Content)
	suite.Equal("ana", comments[1].Author.Username)

	path := base + "/comment/" + idString(first.ID)
	suite.Equal(http.StatusOK, suite.do(http.MethodDelete, path, nil, ana).Code)
	suite.assertError(suite.do(http.MethodDelete, path, nil, ana), http.StatusNotFound, "NOT_FOUND", "Comentario no encontrado")
}

func (suite *HandlerTestSuite) TestDeleteProjectRemovesNestedResources() {
	ana := suite.signup("ana")
	project := suite.createProject(ana, "T")
	suite.createTask(ana, project.ID, gin.H{"title": "a"})
	suite.Equal(http.StatusCreated, suite.do(http.MethodPost, projectPath("/api/comments/project/", project.ID), gin.H{"content": "c"}, ana).Code)

	suite.Equal(http.StatusOK, suite.do(http.MethodDelete, projectPath("/api/projects/", project.ID), nil, ana).Code)

	suite.assertError(suite.do(http.MethodGet, projectPath("/api/tasks/project/", project.ID), nil, ana), http.StatusNotFound, "NOT_FOUND", "Proyecto no encontrado")

	var tasks, comments int64
	suite.Require().NoError(suite.db.Table("tasks").Count(&tasks).Error)
	suite.Require().NoError(suite.db.Table("comments").Count(&comments).Error)
	suite.Zero(tasks)
	suite.Zero(comments)
}

func (suite *HandlerTestSuite) upload(token, filename string, content []byte) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(constants.UploadFormField, filename)
	suite.Require().NoError(err)
	_, err = part.Write(content)
	suite.Require().NoError(err)
	suite.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) TestUploadImage() {
	ana := suite.signup("ana")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

	w := suite.upload(ana, "photo.png", png)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.UploadResponse
	suite.decode(w, &resp)
	suite.Equal("Imagen subida exitosamente", resp.Message)
	suite.Contains(resp.ImageURL, "/uploads/")

	served := suite.do(http.MethodGet, resp.ImageURL, nil, "")
	suite.Equal(http.StatusOK, served.Code)
	suite.Equal(png, served.Body.Bytes())

	w = suite.upload(ana, "notes.png", []byte("plain text"))
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Solo se permiten imagenes")

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	req.Header.Set("Authorization", "Bearer "+ana)
	w = httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "No se subió ningún archivo")
}

func (suite *HandlerTestSuite) TestOwnershipIsCheckedBeforeBody() {
	ana := suite.signup("ana")
	bob := suite.signup("bob")
	project := suite.createProject(ana, "T")
	task := suite.createTask(ana, project.ID, gin.H{"title": "a"})

	bodies := []struct {
		method, path string
		body         any
	}{
		{http.MethodPost, "/api/tasks/project/%d", gin.H{"title": "x", "dueDate": "next tuesday"}},
		{http.MethodPost, "/api/tasks/project/%d", gin.H{"title": 42}},
		{http.MethodPut, "/api/tasks/project/%d/task/" + idString(task.ID), gin.H{"completed": "yes"}},
		{http.MethodPut, "/api/tasks/project/%d/task/" + idString(task.ID), gin.H{"title": strings.Repeat("x", 300)}},
		{http.MethodPost, "/api/tasks/project/%d/suggest", gin.H{"text": 7}},
		{http.MethodPost, "/api/comments/project/%d", gin.H{"content": []int{1}}},
		{http.MethodPut, "/api/projects/%d", gin.H{"title": false}},
	}

	for _, b := range bodies {
		for _, projectID := range []uint64{project.ID, 9999} {
			path := fmt.Sprintf(b.path, projectID)
			w := suite.do(b.method, path, b.body, bob)
			suite.assertError(w, http.StatusNotFound, "NOT_FOUND", "Proyecto no encontrado")
		}

		// the owner gets the validation failure
		w := suite.do(b.method, fmt.Sprintf(b.path, project.ID), b.body, ana)
		suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "")
	}
}

func (suite *HandlerTestSuite) TestOversizedFieldsAreRejected() {
	w := suite.do(http.MethodPost, "/api/auth/register", gin.H{
		"username": strings.Repeat("a", 60),
		"email":    "long@x.com",
		"password": "secret1",
	}, "")
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Campos invalidos")

	var resp struct {
		Details []map[string]string `json:"details"`
	}
	suite.decode(w, &resp)
	suite.Require().Len(resp.Details, 1)
	suite.Equal("Username", resp.Details[0]["field"])
	suite.Equal("max", resp.Details[0]["rule"])
	suite.Equal("50", resp.Details[0]["param"])

	ana := suite.signup("ana")

	w = suite.do(http.MethodPost, "/api/projects", gin.H{"title": strings.Repeat("t", 256), "description": "D"}, ana)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Campos invalidos")

	project := suite.createProject(ana, "T")
	w = suite.do(http.MethodPost, projectPath("/api/tasks/project/", project.ID), gin.H{"title": strings.Repeat("t", 256)}, ana)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Campos invalidos")

	task := suite.createTask(ana, project.ID, gin.H{"title": "a"})
	path := projectPath("/api/tasks/project/", project.ID, "/task/", idString(task.ID))
	w = suite.do(http.MethodPut, path, gin.H{"image": strings.Repeat("i", 513)}, ana)
	suite.assertError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Campos invalidos")

	w = suite.do(http.MethodPut, path, gin.H{"title": strings.Repeat("t", 255)}, ana)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func TestUpdateTaskInputFromRaw(t *testing.T) {
	input, err := updateTaskInputFromRaw(map[string]any{
		"title":     "x",
		"completed": true,
		"priority":  "high",
		"dueDate":   nil,
	})
	assert.NoError(t, err)
	assert.Equal(t, "x", *input.Title)
	assert.True(t, *input.Completed)
	assert.Equal(t, "high", string(*input.Priority))
	assert.True(t, input.ClearDueDate)
	assert.Nil(t, input.Description)
	assert.Nil(t, input.Image)

	_, err = updateTaskInputFromRaw(map[string]any{"completed": "yes"})
	assert.Error(t, err)

	input, err = updateTaskInputFromRaw(map[string]any{"dueDate": "2030-01-02T15:04:05Z"})
	assert.NoError(t, err)
	assert.False(t, input.ClearDueDate)
	assert.Equal(t, 15, input.DueDate.Hour())
}

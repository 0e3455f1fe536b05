package repositories

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mockmate/interview-coach/internal/config"
	"mockmate/interview-coach/internal/models"
)

var testDBCounter atomic.Int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:repositories_test_%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{FullName: "Test User", Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProfession(t *testing.T, db *gorm.DB, name string, grade models.Grade, questionCount int) *models.Profession {
	t.Helper()
	profession := &models.Profession{Name: name}
	require.NoError(t, db.Create(profession).Error)

	for i := 0; i < questionCount; i++ {
		question := &models.Question{
			ProfessionID: profession.ID,
			Grade:        grade,
			QuestionText: fmt.Sprintf("%s %s question %d", name, grade, i+1),
		}
		require.NoError(t, db.Create(question).Error)
	}
	return profession
}

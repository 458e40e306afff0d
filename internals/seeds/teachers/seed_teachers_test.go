package teachers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sekolahku_backend/internals/seeds/loader"
)

func TestBundledTeachersFile(t *testing.T) {
	var seeds []TeacherSeed
	require.NoError(t, loader.Decode("data_teachers.yaml", &seeds))
	require.Len(t, seeds, 2)

	v := validator.New()
	for _, s := range seeds {
		req := s.Request()
		assert.NoError(t, v.Struct(req), s.Username)
		require.NotNil(t, req.Homeroom)
	}
	assert.Equal(t, []string{"IPA", "Bahasa Indonesia"}, seeds[1].Subjects)
}

func TestTeacherSeed_RequestWithoutHomeroom(t *testing.T) {
	req := TeacherSeed{Username: "ani", Name: "Ani", Password: "x", Homeroom: "  "}.Request()
	assert.Nil(t, req.Homeroom)
}

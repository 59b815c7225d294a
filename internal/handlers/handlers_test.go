package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/abhijith3110/Learning-Management-System/internal/utils"
)

func TestRequestMessage(t *testing.T) {
	var req createAdminRequest
	err := utils.Validate.Struct(req)
	require.Error(t, err)
	assert.Equal(t, "All fields are mandatory", requestMessage(err))

	req = createAdminRequest{
		FirstName: "Asha", LastName: "Nair", Email: "asha@gmail.com",
		Password: "Asha1@x", Gender: "robot", DOB: "2000-01-01",
		Phone: "9876543210", Status: "active", Role: "admin",
	}
	err = utils.Validate.Struct(req)
	require.Error(t, err)
	assert.Contains(t, requestMessage(err), "oneof")
}

func TestUniquenessTerms(t *testing.T) {
	assert.Nil(t, uniquenessTerms(nil, nil))

	email := "asha@gmail.com"
	phone := "9876543210"

	terms := uniquenessTerms(&email, nil)
	require.Len(t, terms, 1)
	assert.Equal(t, bson.M{"email": email}, terms[0])

	terms = uniquenessTerms(&email, &phone)
	require.Len(t, terms, 2)
	assert.Equal(t, bson.M{"phone": phone}, terms[1])
}

func TestParseObjectIDs(t *testing.T) {
	ids, err := parseObjectIDs([]string{"64f1c0ffee0000000000aaaa", "64f1c0ffee0000000000bbbb"})
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	_, err = parseObjectIDs([]string{"64f1c0ffee0000000000aaaa", "nope"})
	assert.Error(t, err)

	ids, err = parseObjectIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2026-09-01T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 10, d.Hour())

	_, err = parseDate("01/09/2026")
	assert.Error(t, err)
}

func TestSetString(t *testing.T) {
	update := bson.M{}
	setString(update, "first_name", nil)
	assert.Empty(t, update)

	name := "Asha"
	setString(update, "first_name", &name)
	assert.Equal(t, bson.M{"first_name": "Asha"}, update)

	empty := ""
	setString(update, "notes", &empty)
	assert.Equal(t, "", update["notes"])
}

func TestPasswordRuleMessageMentionsEveryRule(t *testing.T) {
	for _, fragment := range []string{"6 characters", "uppercase", "number", "special"} {
		assert.True(t, strings.Contains(passwordRuleMessage, fragment), fragment)
	}
}

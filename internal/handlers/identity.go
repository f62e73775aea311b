package handlers

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// errNoOwner is returned when a request supplies neither a userId nor a
// tempUserId where one is required.
var errNoOwner = errors.New("userId or tempUserId is required")

// ownerFields is the resolved ownership of a resource being created: exactly
// one of the two pointers is non-nil, the other is stored as an explicit null.
type ownerFields struct {
	UserID     *string
	TempUserID *string
}

// resolveOwner decides resource ownership at create time. A registered userId
// always wins over a tempUserId; supplying neither is rejected.
func resolveOwner(userID, tempUserID string) (ownerFields, error) {
	userID = strings.TrimSpace(userID)
	tempUserID = strings.TrimSpace(tempUserID)

	switch {
	case userID != "":
		return ownerFields{UserID: &userID}, nil
	case tempUserID != "":
		return ownerFields{TempUserID: &tempUserID}, nil
	default:
		return ownerFields{}, errNoOwner
	}
}

// ownerFilter builds the single-key equality filter for list queries, with
// userId taking priority when both are supplied.
func ownerFilter(userID, tempUserID string) (bson.M, error) {
	userID = strings.TrimSpace(userID)
	tempUserID = strings.TrimSpace(tempUserID)

	switch {
	case userID != "":
		return bson.M{"userId": userID}, nil
	case tempUserID != "":
		return bson.M{"tempUserId": tempUserID}, nil
	default:
		return nil, errNoOwner
	}
}

// authorizedOwner reports whether the caller may delete a resource: the
// non-empty caller-supplied id must equal the corresponding stored owner
// field. Caller ids are trimmed the same way resolveOwner trims them at
// create time.
func authorizedOwner(docUserID, docTempUserID, callerUserID, callerTempUserID string) bool {
	callerUserID = strings.TrimSpace(callerUserID)
	callerTempUserID = strings.TrimSpace(callerTempUserID)

	if callerUserID != "" && callerUserID == docUserID {
		return true
	}
	if callerTempUserID != "" && callerTempUserID == docTempUserID {
		return true
	}
	return false
}

// bearerToken extracts the token from an Authorization header. The header
// must start with exactly "Bearer ".
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", false
	}
	return token, true
}

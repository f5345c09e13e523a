package handlers

import (
	"net/http/httptest"
	"regexp"
	"testing"

	"ecofreight-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func ctxWith(role, userID string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("user_role", role)
	c.Set("user_id", userID)
	return c
}

func TestNewTrackingID(t *testing.T) {
	pattern := regexp.MustCompile(`^ECO-[0-9A-F]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := newTrackingID()
		assert.Regexp(t, pattern, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestScopeFilterManagerSeesEverything(t *testing.T) {
	filter := scopeFilter(ctxWith(models.RoleManager, "m1"))
	assert.Equal(t, bson.M{}, filter)
}

func TestScopeFilterDriverSeesAssignments(t *testing.T) {
	filter := scopeFilter(ctxWith(models.RoleDriver, "d1"))
	assert.Equal(t, bson.M{"driverID": "d1"}, filter)
}

func TestScopeFilterCustomerSeesOwnOrders(t *testing.T) {
	filter := scopeFilter(ctxWith(models.RoleCustomer, "c1"))
	assert.Equal(t, bson.M{"customerID": "c1"}, filter)
}

func TestVisibleShipmentFilterBindsOwnerForCustomers(t *testing.T) {
	// A customer looking up another customer's tracking id must query with
	// their own customerID bound, so the sensor and event reads 404 instead
	// of leaking the location trail.
	filter := visibleShipmentFilter(ctxWith(models.RoleCustomer, "c1"), "ECO-AAAA1111")
	assert.Equal(t, bson.M{"customerID": "c1", "trackingID": "ECO-AAAA1111"}, filter)
}

func TestVisibleShipmentFilterBindsAssignmentForDrivers(t *testing.T) {
	filter := visibleShipmentFilter(ctxWith(models.RoleDriver, "d1"), "ECO-AAAA1111")
	assert.Equal(t, bson.M{"driverID": "d1", "trackingID": "ECO-AAAA1111"}, filter)
}

func TestVisibleShipmentFilterManagerUnrestricted(t *testing.T) {
	filter := visibleShipmentFilter(ctxWith(models.RoleManager, "m1"), "ECO-AAAA1111")
	assert.Equal(t, bson.M{"trackingID": "ECO-AAAA1111"}, filter)
}

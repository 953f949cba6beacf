package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-bounce-raytracer/pkg/core"
	"github.com/df07/go-bounce-raytracer/pkg/geometry"
	"github.com/df07/go-bounce-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectID     int                    `json:"objectId"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Color        string                 `json:"color,omitempty"` // Base color as #rrggbb
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// inspectPixel casts the primary ray for a pixel and returns the nearest hit
func inspectPixel(sceneObj *scene.Scene, width, height, pixelX, pixelY int) (*geometry.Hit, bool) {
	ray := sceneObj.Camera.GetRay(pixelX, pixelY, width, height)
	return sceneObj.CalculateHit(ray, geometry.NoObject)
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(object geometry.Object) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties
	default:
		return "unknown", properties
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Color) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.R*255), int(c.G*255), int(c.B*255))
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	req, sceneObj, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return jsonError(c, statusFor(err), "Invalid scene parameters: "+err.Error())
	}

	pixelX, err := parseIntParam(c.QueryParams(), "x", -1, 0, req.Width-1)
	if err != nil || pixelX < 0 {
		return jsonError(c, http.StatusBadRequest, "Invalid x coordinate")
	}
	pixelY, err := parseIntParam(c.QueryParams(), "y", -1, 0, req.Height-1)
	if err != nil || pixelY < 0 {
		return jsonError(c, http.StatusBadRequest, "Invalid y coordinate")
	}

	hit, isHit := inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY)
	if !isHit {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false, ObjectID: int(geometry.NoObject)})
	}

	geometryType, properties := extractGeometryInfo(hit.Object)
	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		ObjectID:     int(hit.ObjectID),
		GeometryType: geometryType,
		Color:        hexColor(hit.Object.Color()),
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T,
		Properties:   properties,
	})
}

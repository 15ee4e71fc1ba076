// Package geo converts the optional report location between GeoJSON, as
// clients send it, and WKB, as it is stored.
package geo

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// ErrNotAPoint is returned when the GeoJSON geometry is not a Point.
var ErrNotAPoint = errors.New("location must be a GeoJSON Point")

// ParsePoint validates a GeoJSON Point and returns its WKB encoding.
// An empty input yields nil bytes and no error.
func ParsePoint(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, fmt.Errorf("invalid GeoJSON: %w", err)
	}
	p, ok := g.(*geom.Point)
	if !ok {
		return nil, ErrNotAPoint
	}
	if len(p.FlatCoords()) < 2 {
		return nil, ErrNotAPoint
	}
	lng, lat := p.X(), p.Y()
	if lng < -180 || lng > 180 || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("coordinates out of range: [%g, %g]", lng, lat)
	}
	return wkb.Marshal(p, binary.LittleEndian)
}

// ToGeoJSON converts stored WKB back to a GeoJSON string.
func ToGeoJSON(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

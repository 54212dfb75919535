package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"

	"github.com/fleetops/rosterd/internal/pkg/constants"
	"github.com/fleetops/rosterd/internal/pkg/database"
	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/internal/utils"
	"github.com/fleetops/rosterd/services/trip"
)

// Positions expire if a vehicle stops pinging; the fleet map should not show
// stale vehicles forever.
const positionTTL = 30 * time.Minute

// VehicleCacheRepo keeps last-known vehicle positions in Redis: one hash per
// vehicle plus a GEO set for map queries.
type VehicleCacheRepo struct {
	redis *database.RedisClient
}

// NewVehicleCacheRepository creates a new vehicle position cache
func NewVehicleCacheRepository(redis *database.RedisClient) trip.VehicleCacheRepo {
	return &VehicleCacheRepo{redis: redis}
}

// SetPosition overwrites the vehicle's last known position, last write wins.
func (r *VehicleCacheRepo) SetPosition(ctx context.Context, pos *models.VehiclePosition) error {
	if pos.Geohash == "" {
		pos.Geohash = geohash.EncodeWithPrecision(pos.Latitude, pos.Longitude, utils.GeohashPrecision)
	}

	key := fmt.Sprintf(constants.KeyVehicleLocation, pos.VehicleID)
	err := r.redis.HSet(ctx, key, map[string]interface{}{
		constants.FieldLatitude:  pos.Latitude,
		constants.FieldLongitude: pos.Longitude,
		constants.FieldGeohash:   pos.Geohash,
		constants.FieldTimestamp: pos.Timestamp.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("failed to store vehicle position: %w", err)
	}

	if err := r.redis.Expire(ctx, key, positionTTL); err != nil {
		return fmt.Errorf("failed to set position TTL: %w", err)
	}

	if err := r.redis.GeoAdd(ctx, constants.KeyVehicleGeo, pos.Longitude, pos.Latitude, pos.VehicleID.String()); err != nil {
		return fmt.Errorf("failed to update vehicle geo set: %w", err)
	}
	return nil
}

// GetPosition returns the vehicle's last known position.
func (r *VehicleCacheRepo) GetPosition(ctx context.Context, vehicleID uuid.UUID) (*models.VehiclePosition, error) {
	key := fmt.Sprintf(constants.KeyVehicleLocation, vehicleID)
	fields, err := r.redis.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read vehicle position: %w", err)
	}
	if len(fields) == 0 {
		return nil, errs.NotFoundf("no position for vehicle %s", vehicleID)
	}
	return parsePosition(vehicleID, fields)
}

// ListPositions returns the last known position of every vehicle in the geo
// set. Vehicles whose hash expired are skipped.
func (r *VehicleCacheRepo) ListPositions(ctx context.Context) ([]*models.VehiclePosition, error) {
	members, err := r.redis.GeoMembers(ctx, constants.KeyVehicleGeo)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle geo members: %w", err)
	}

	positions := make([]*models.VehiclePosition, 0, len(members))
	for _, member := range members {
		vehicleID, err := uuid.Parse(member)
		if err != nil {
			continue
		}

		pos, err := r.GetPosition(ctx, vehicleID)
		if err != nil {
			if errs.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

func parsePosition(vehicleID uuid.UUID, fields map[string]string) (*models.VehiclePosition, error) {
	lat, err := strconv.ParseFloat(fields[constants.FieldLatitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cached latitude for vehicle %s: %w", vehicleID, err)
	}
	lng, err := strconv.ParseFloat(fields[constants.FieldLongitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cached longitude for vehicle %s: %w", vehicleID, err)
	}

	ts, err := time.Parse(time.RFC3339Nano, fields[constants.FieldTimestamp])
	if err != nil {
		ts = time.Time{}
	}

	return &models.VehiclePosition{
		VehicleID: vehicleID,
		Latitude:  lat,
		Longitude: lng,
		Geohash:   fields[constants.FieldGeohash],
		Timestamp: ts,
	}, nil
}

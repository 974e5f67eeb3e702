package repository

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/query"

	"sentinel-backend/internal/models"
)

const measurement = "sensor_readings"

// InfluxReadingRepository implements ReadingRepository on InfluxDB. Readings
// land in a single bucket as one point per sample, tagged with owner_id and
// device_id. A sensor value that was not reported is simply not written as a
// field, so absence survives the round trip.
type InfluxReadingRepository struct {
	client influxdb2.Client
	org    string
	bucket string
}

func NewInfluxReadingRepository(client influxdb2.Client, org, bucket string) *InfluxReadingRepository {
	return &InfluxReadingRepository{
		client: client,
		org:    org,
		bucket: bucket,
	}
}

// EnsureBucket creates the readings bucket if it does not exist yet.
// Called once at startup.
func (r *InfluxReadingRepository) EnsureBucket(ctx context.Context) error {
	bucketsAPI := r.client.BucketsAPI()
	if _, err := bucketsAPI.FindBucketByName(ctx, r.bucket); err == nil {
		return nil
	}

	org, err := r.client.OrganizationsAPI().FindOrganizationByName(ctx, r.org)
	if err != nil {
		return fmt.Errorf("find organization %q: %w", r.org, err)
	}
	if org == nil {
		return fmt.Errorf("organization %q not found", r.org)
	}

	if _, err := bucketsAPI.CreateBucketWithName(ctx, org, r.bucket); err != nil {
		return fmt.Errorf("create bucket %q: %w", r.bucket, err)
	}
	log.Printf("Bucket %q created", r.bucket)
	return nil
}

func (r *InfluxReadingRepository) Insert(ctx context.Context, reading models.Reading) (models.Reading, error) {
	fields := make(map[string]interface{})
	putFloat := func(key string, value *float64) {
		if value != nil {
			fields[key] = *value
		}
	}
	putFloat("temperature", reading.Temperature)
	putFloat("humidity", reading.Humidity)
	putFloat("gas", reading.Gas)
	putFloat("heart_rate", reading.HeartRate)
	putFloat("noise_level", reading.NoiseLevel)
	putFloat("steps", reading.Steps)
	putFloat("device_battery", reading.DeviceBattery)
	putFloat("auxiliary_battery", reading.AuxiliaryBattery)
	if reading.FallDetected != nil {
		fields["fall_detected"] = *reading.FallDetected
	}
	// A point must carry at least one field; an all-absent sample still
	// counts as an entry.
	if len(fields) == 0 {
		fields["heartbeat"] = true
	}

	point := influxdb2.NewPoint(
		measurement,
		map[string]string{
			"owner_id":  strconv.FormatUint(uint64(reading.UserID), 10),
			"device_id": reading.DeviceID,
		},
		fields,
		reading.CreatedAt,
	)

	writeAPI := r.client.WriteAPIBlocking(r.org, r.bucket)
	if err := writeAPI.WritePoint(ctx, point); err != nil {
		return models.Reading{}, fmt.Errorf("insert reading: %w", err)
	}
	return reading, nil
}

func (r *InfluxReadingRepository) LatestPerDevice(ctx context.Context, ownerID uint) ([]models.Reading, error) {
	flux := fmt.Sprintf(`
		from(bucket: "%s")
		|> range(start: 0)
		|> filter(fn: (r) => r["_measurement"] == "%s")
		|> filter(fn: (r) => r["owner_id"] == "%d")
		|> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
		|> group(columns: ["device_id"])
		|> sort(columns: ["_time"], desc: true)
		|> limit(n: 1)
	`, r.bucket, measurement, ownerID)

	readings, err := r.queryReadings(ctx, flux)
	if err != nil {
		return nil, fmt.Errorf("latest per device: %w", err)
	}
	sortNewestFirst(readings)
	return readings, nil
}

func (r *InfluxReadingRepository) FindByDeviceAndRange(ctx context.Context, ownerID uint, deviceID string, start, end time.Time) ([]models.Reading, error) {
	// Flux range stops are exclusive; nudge the stop so readings exactly at
	// the end boundary are included.
	stop := end.Add(time.Nanosecond)
	flux := fmt.Sprintf(`
		from(bucket: "%s")
		|> range(start: %s, stop: %s)
		|> filter(fn: (r) => r["_measurement"] == "%s")
		|> filter(fn: (r) => r["owner_id"] == "%d")
		|> filter(fn: (r) => r["device_id"] == "%s")
		|> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
		|> group()
		|> sort(columns: ["_time"], desc: true)
	`, r.bucket, start.Format(time.RFC3339Nano), stop.Format(time.RFC3339Nano), measurement, ownerID, deviceID)

	readings, err := r.queryReadings(ctx, flux)
	if err != nil {
		return nil, fmt.Errorf("find by device and range: %w", err)
	}
	return readings, nil
}

func (r *InfluxReadingRepository) FindAllForOwner(ctx context.Context, ownerID uint) ([]models.Reading, error) {
	flux := fmt.Sprintf(`
		from(bucket: "%s")
		|> range(start: 0)
		|> filter(fn: (r) => r["_measurement"] == "%s")
		|> filter(fn: (r) => r["owner_id"] == "%d")
		|> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
		|> group()
		|> sort(columns: ["_time"], desc: true)
	`, r.bucket, measurement, ownerID)

	readings, err := r.queryReadings(ctx, flux)
	if err != nil {
		return nil, fmt.Errorf("find all for owner: %w", err)
	}
	return readings, nil
}

func (r *InfluxReadingRepository) FindAll(ctx context.Context) ([]models.Reading, error) {
	flux := fmt.Sprintf(`
		from(bucket: "%s")
		|> range(start: 0)
		|> filter(fn: (r) => r["_measurement"] == "%s")
		|> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
		|> group()
		|> sort(columns: ["_time"], desc: true)
	`, r.bucket, measurement)

	readings, err := r.queryReadings(ctx, flux)
	if err != nil {
		return nil, fmt.Errorf("find all readings: %w", err)
	}
	return readings, nil
}

func (r *InfluxReadingRepository) queryReadings(ctx context.Context, flux string) ([]models.Reading, error) {
	queryAPI := r.client.QueryAPI(r.org)
	result, err := queryAPI.Query(ctx, flux)
	if err != nil {
		return nil, err
	}

	var readings []models.Reading
	for result.Next() {
		readings = append(readings, recordToReading(result.Record()))
	}
	if result.Err() != nil {
		return nil, result.Err()
	}
	return readings, nil
}

func recordToReading(record *query.FluxRecord) models.Reading {
	reading := models.Reading{CreatedAt: record.Time()}

	if id, ok := record.ValueByKey("device_id").(string); ok {
		reading.DeviceID = id
	}
	if owner, ok := record.ValueByKey("owner_id").(string); ok {
		if parsed, err := strconv.ParseUint(owner, 10, 64); err == nil {
			reading.UserID = uint(parsed)
		}
	}

	reading.Temperature = floatField(record, "temperature")
	reading.Humidity = floatField(record, "humidity")
	reading.Gas = floatField(record, "gas")
	reading.HeartRate = floatField(record, "heart_rate")
	reading.NoiseLevel = floatField(record, "noise_level")
	reading.Steps = floatField(record, "steps")
	reading.DeviceBattery = floatField(record, "device_battery")
	reading.AuxiliaryBattery = floatField(record, "auxiliary_battery")
	if fall, ok := record.ValueByKey("fall_detected").(bool); ok {
		reading.FallDetected = &fall
	}
	return reading
}

func floatField(record *query.FluxRecord, key string) *float64 {
	switch value := record.ValueByKey(key).(type) {
	case float64:
		return &value
	case int64:
		converted := float64(value)
		return &converted
	default:
		return nil
	}
}

func sortNewestFirst(readings []models.Reading) {
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].CreatedAt.After(readings[j].CreatedAt)
	})
}

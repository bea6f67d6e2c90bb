// Package redisstore implements the course data stores on Redis.
//
// Key layout:
//
//	courses                     set of course IDs
//	course:{id}                 hash: title, status, type
//	course:{id}:users           sorted set of user IDs scored by enrollment time (ms)
//	user:{id}                   hash: login, email
//	progress:{user}:{course}    hash: completed, total, status
package redisstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"coursereport/internal/adapters/storage"
	courseStore "coursereport/internal/adapters/storage/course"
	courseDomain "coursereport/internal/domain/course"
	progressDomain "coursereport/internal/domain/progress"
	userDomain "coursereport/internal/domain/user"
)

const (
	coursesKey     = "courses"
	coursePrefix   = "course:"
	userPrefix     = "user:"
	progressPrefix = "progress:"
)

func courseKey(id int64) string {
	return coursePrefix + strconv.FormatInt(id, 10)
}

func courseUsersKey(id int64) string {
	return courseKey(id) + ":users"
}

func userKey(id int64) string {
	return userPrefix + strconv.FormatInt(id, 10)
}

func progressKey(userID, courseID int64) string {
	return fmt.Sprintf("%s%d:%d", progressPrefix, userID, courseID)
}

// NewClient opens a Redis client and verifies the connection.
// PRE: addr is host:port
// POST: Returns a connected client or an error
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// CourseStore implements course.Store on Redis.
type CourseStore struct {
	client *redis.Client
}

// NewCourseStore creates a Redis-backed course store.
func NewCourseStore(client *redis.Client) *CourseStore {
	return &CourseStore{client: client}
}

// List returns courses matching the filter ordered by title.
// IDs in the courses set without a hash are skipped.
func (s *CourseStore) List(ctx context.Context, filter courseStore.ListFilter) ([]courseDomain.Course, error) {
	ids, err := s.client.SMembers(ctx, coursesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list course ids: %w", err)
	}

	results := []courseDomain.Course{}
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		data, err := s.client.HGetAll(ctx, courseKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("get course %d: %w", id, err)
		}
		if len(data) == 0 {
			continue
		}
		c := courseDomain.Course{ID: id, Title: data["title"], Status: data["status"], Type: data["type"]}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		results = append(results, c)
	}
	courseDomain.SortByTitle(results)
	return results, nil
}

// Save stores a course hash and registers its ID.
func (s *CourseStore) Save(ctx context.Context, c courseDomain.Course) error {
	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, coursesKey, strconv.FormatInt(c.ID, 10))
	pipe.HSet(ctx, courseKey(c.ID), "title", c.Title, "status", c.Status, "type", c.Type)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save course %d: %w", c.ID, err)
	}
	return nil
}

// UserStore implements user.Store on Redis.
type UserStore struct {
	client *redis.Client
}

// NewUserStore creates a Redis-backed user store.
func NewUserStore(client *redis.Client) *UserStore {
	return &UserStore{client: client}
}

// GetByID returns the user or an error wrapping storage.ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id int64) (userDomain.User, error) {
	data, err := s.client.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return userDomain.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	if len(data) == 0 {
		return userDomain.User{}, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return userDomain.User{ID: id, Login: data["login"], Email: data["email"]}, nil
}

// Save validates and stores a user hash.
func (s *UserStore) Save(ctx context.Context, u userDomain.User) error {
	if err := u.Validate(); err != nil {
		return fmt.Errorf("save user %d: %w", u.ID, err)
	}
	if err := s.client.HSet(ctx, userKey(u.ID), "login", u.Login, "email", u.Email).Err(); err != nil {
		return fmt.Errorf("save user %d: %w", u.ID, err)
	}
	return nil
}

// EnrollmentStore implements enrollment.Store on Redis.
type EnrollmentStore struct {
	client *redis.Client
}

// NewEnrollmentStore creates a Redis-backed enrollment store.
func NewEnrollmentStore(client *redis.Client) *EnrollmentStore {
	return &EnrollmentStore{client: client}
}

// ListUserIDs returns enrolled user IDs in enrollment order.
// Members that are not integers are skipped.
func (s *EnrollmentStore) ListUserIDs(ctx context.Context, courseID int64) ([]int64, error) {
	members, err := s.client.ZRange(ctx, courseUsersKey(courseID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list enrollments for course %d: %w", courseID, err)
	}
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Enroll adds the user to the course. Re-enrolling keeps the original time.
func (s *EnrollmentStore) Enroll(ctx context.Context, courseID, userID int64, at time.Time) error {
	err := s.client.ZAddNX(ctx, courseUsersKey(courseID), &redis.Z{
		Score:  float64(at.UnixMilli()),
		Member: strconv.FormatInt(userID, 10),
	}).Err()
	if err != nil {
		return fmt.Errorf("enroll user %d in course %d: %w", userID, courseID, err)
	}
	return nil
}

// ProgressStore implements progress.Store on Redis.
type ProgressStore struct {
	client *redis.Client
}

// NewProgressStore creates a Redis-backed progress store.
func NewProgressStore(client *redis.Client) *ProgressStore {
	return &ProgressStore{client: client}
}

// Get returns the progress record or an error wrapping storage.ErrNotFound.
// Counter fields are parsed leniently; malformed values become 0.
func (s *ProgressStore) Get(ctx context.Context, userID, courseID int64) (progressDomain.Record, error) {
	data, err := s.client.HGetAll(ctx, progressKey(userID, courseID)).Result()
	if err != nil {
		return progressDomain.Record{}, fmt.Errorf("get progress %d/%d: %w", userID, courseID, err)
	}
	if len(data) == 0 {
		return progressDomain.Record{}, fmt.Errorf("progress for user %d in course %d: %w", userID, courseID, storage.ErrNotFound)
	}
	return recordFromHash(data), nil
}

// Save stores a progress hash. An empty status is stored as an absent field.
func (s *ProgressStore) Save(ctx context.Context, userID, courseID int64, rec progressDomain.Record) error {
	key := progressKey(userID, courseID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, "completed", rec.Completed, "total", rec.Total)
	if rec.Status != "" {
		pipe.HSet(ctx, key, "status", rec.Status)
	} else {
		pipe.HDel(ctx, key, "status")
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save progress %d/%d: %w", userID, courseID, err)
	}
	return nil
}

func recordFromHash(data map[string]string) progressDomain.Record {
	return progressDomain.Record{
		Completed: progressDomain.ParseCount(data["completed"]),
		Total:     progressDomain.ParseCount(data["total"]),
		Status:    data["status"],
	}
}

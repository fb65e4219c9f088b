package neo4j

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/course-aggregator/internal/domain"
	"github.com/honeycarbs/course-aggregator/internal/repository"

	pkgneo4j "github.com/honeycarbs/course-aggregator/pkg/neo4j"
)

// Ensure CourseRepository implements repository.CourseRepository
var _ repository.CourseRepository = (*CourseRepository)(nil)

// CourseRepository implements repository.CourseRepository with Neo4j
type CourseRepository struct {
	client *pkgneo4j.Client
}

// NewCourseRepository creates a CourseRepository with a Neo4j client
func NewCourseRepository(client *pkgneo4j.Client) *CourseRepository {
	return &CourseRepository{
		client: client,
	}
}

const upsertCoursesQuery = `
	UNWIND $courses AS course
	MERGE (c:Course {provider: course.provider, providerCourseId: course.providerCourseId})
	SET c.id = course.id,
	    c.title = course.title,
	    c.description = course.description,
	    c.url = course.url,
	    c.imageUrl = course.imageUrl,
	    c.price = course.price,
	    c.numericPrice = course.numericPrice,
	    c.rating = course.rating,
	    c.reviews = course.reviews,
	    c.language = course.language,
	    c.duration = course.duration,
	    c.certificate = course.certificate,
	    c.startDate = course.startDate,
	    c.pacing = course.pacing,
	    c.fetchedAt = datetime({epochMillis: course.fetchedAt})
	WITH c, course
	MERGE (p:Provider {name: course.provider})
	MERGE (c)-[:OFFERED_BY]->(p)
	WITH c, course
	FOREACH (skill IN course.skills |
		MERGE (s:Skill {name: skill})
		MERGE (c)-[:TEACHES]->(s)
	)
`

// UpsertCourses merges courses keyed by provider and upstream id
func (r *CourseRepository) UpsertCourses(ctx context.Context, courses []domain.CourseRef) error {
	if len(courses) == 0 {
		return nil
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	coursesData := make([]map[string]any, 0, len(courses))
	for _, ref := range courses {
		coursesData = append(coursesData, courseParams(ref))
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, upsertCoursesQuery, map[string]any{"courses": coursesData})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})

	return err
}

// FindByIDs loads courses by catalog ID
func (r *CourseRepository) FindByIDs(ctx context.Context, ids []domain.CourseID) ([]domain.CourseRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	query := `
		MATCH (c:Course)
		WHERE c.id IN $ids
		OPTIONAL MATCH (c)-[:TEACHES]->(s:Skill)
		RETURN c, collect(DISTINCT s.name) AS skills
	`
	return r.collect(ctx, query, map[string]any{"ids": idStrings})
}

// FindBySkills loads courses teaching any of the skills, best rated first
func (r *CourseRepository) FindBySkills(ctx context.Context, skills []string, limit int) ([]domain.CourseRef, error) {
	if len(skills) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 25
	}

	normalized := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = normalizeSkill(s); s != "" {
			normalized = append(normalized, s)
		}
	}

	query := `
		MATCH (c:Course)-[:TEACHES]->(m:Skill)
		WHERE m.name IN $skills
		WITH DISTINCT c
		OPTIONAL MATCH (c)-[:TEACHES]->(s:Skill)
		WITH c, collect(DISTINCT s.name) AS skills
		RETURN c, skills
		ORDER BY coalesce(c.rating, 0) DESC, c.title
		LIMIT $limit
	`
	return r.collect(ctx, query, map[string]any{"skills": normalized, "limit": limit})
}

func (r *CourseRepository) collect(ctx context.Context, query string, params map[string]any) ([]domain.CourseRef, error) {
	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}

		refs := make([]domain.CourseRef, 0)
		for records.Next(ctx) {
			record := records.Record()

			courseVal, ok := record.Get("c")
			if !ok {
				continue
			}
			node, ok := courseVal.(neo4j.Node)
			if !ok {
				continue
			}

			ref, ok := courseFromProps(node.Props)
			if !ok {
				continue
			}

			if skillsVal, ok := record.Get("skills"); ok {
				if list, ok := skillsVal.([]any); ok {
					for _, s := range list {
						if name, ok := s.(string); ok {
							ref.Skills = append(ref.Skills, name)
						}
					}
				}
			}

			refs = append(refs, ref)
		}

		if err := records.Err(); err != nil {
			return nil, err
		}
		return refs, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]domain.CourseRef), nil
}

func courseParams(ref domain.CourseRef) map[string]any {
	c := ref.Course
	id := ref.ID
	if id == uuid.Nil {
		id = domain.NewCourseID(c.Provider, c.ProviderCourseID)
	}
	fetchedAt := ref.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	skills := make([]string, 0, len(ref.Skills))
	for _, s := range ref.Skills {
		if s = normalizeSkill(s); s != "" {
			skills = append(skills, s)
		}
	}

	var reviews any
	if c.ReviewCount != nil {
		reviews = int64(*c.ReviewCount)
	}

	return map[string]any{
		"id":               id.String(),
		"provider":         c.Provider,
		"providerCourseId": c.ProviderCourseID,
		"title":            c.Title,
		"description":      c.Description,
		"url":              c.URL,
		"imageUrl":         optional(c.ImageURL),
		"price":            c.Price.Raw(),
		"numericPrice":     c.NumericPrice,
		"rating":           optional(c.Rating),
		"reviews":          reviews,
		"language":         optional(c.Language),
		"duration":         optional(c.Duration),
		"certificate":      optional(c.Certificate),
		"startDate":        optional(c.StartDate),
		"pacing":           optional(c.Pacing),
		"skills":           skills,
		"fetchedAt":        fetchedAt.UnixMilli(),
	}
}

func courseFromProps(props map[string]any) (domain.CourseRef, bool) {
	rawID, _ := props["id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.CourseRef{}, false
	}

	c := domain.NormalizedCourse{
		Provider:         str(props["provider"]),
		ProviderCourseID: str(props["providerCourseId"]),
		Title:            str(props["title"]),
		Description:      str(props["description"]),
		URL:              str(props["url"]),
		ImageURL:         strPtr(props["imageUrl"]),
		Language:         strPtr(props["language"]),
		Duration:         strPtr(props["duration"]),
		StartDate:        strPtr(props["startDate"]),
		Pacing:           strPtr(props["pacing"]),
	}
	switch v := props["price"].(type) {
	case float64:
		c.Price = domain.NumericPrice(v)
	case int64:
		c.Price = domain.NumericPrice(float64(v))
	case string:
		c.Price = domain.TextPrice(v)
	}
	if v, ok := props["numericPrice"].(float64); ok {
		c.NumericPrice = v
	}
	if v, ok := props["rating"].(float64); ok {
		c.Rating = &v
	}
	if v, ok := props["reviews"].(int64); ok {
		n := int(v)
		c.ReviewCount = &n
	}
	if v, ok := props["certificate"].(bool); ok {
		c.Certificate = &v
	}

	var fetchedAt time.Time
	switch v := props["fetchedAt"].(type) {
	case time.Time:
		fetchedAt = v
	case neo4j.LocalDateTime:
		fetchedAt = v.Time()
	}

	return domain.CourseRef{ID: id, Course: c, FetchedAt: fetchedAt}, true
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strPtr(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

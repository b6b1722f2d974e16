package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/santaradigital/backoffice/internal/content/domain"
	"github.com/santaradigital/backoffice/pkg/db/option"
	"github.com/santaradigital/backoffice/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log          *zap.Logger
	GenID        *snowflake.Node
	Sections     repository.Store[domain.LandingSection]
	Testimonials repository.Store[domain.Testimonial]
	Footer       repository.Store[domain.FooterColumn]
}

type Service struct {
	log          *zap.Logger
	genID        *snowflake.Node
	sections     repository.Store[domain.LandingSection]
	testimonials repository.Store[domain.Testimonial]
	footer       repository.Store[domain.FooterColumn]
}

func New(p Params) domain.Service {
	return &Service{
		log:          p.Log.Named("content.service"),
		genID:        p.GenID,
		sections:     p.Sections,
		testimonials: p.Testimonials,
		footer:       p.Footer,
	}
}

func parseID(id string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return parsed, nil
}

func (s *Service) ListSections(ctx context.Context) ([]domain.LandingSection, error) {
	items, err := s.sections.Find(ctx, nil, option.OrderBy("section_order asc, id asc"))
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) UpsertSection(ctx context.Context, id string, req domain.UpsertSectionRequest) (domain.LandingSection, error) {
	name := strings.TrimSpace(req.SectionName)
	if name == "" {
		return domain.LandingSection{}, domain.ErrInvalidSectionName
	}

	enabled := true
	if req.IsEnabled != nil {
		enabled = *req.IsEnabled
	}

	now := time.Now().UTC()
	section := domain.LandingSection{
		SectionName:  name,
		Slug:         slug.Make(name),
		Title:        strings.TrimSpace(req.Title),
		Subtitle:     strings.TrimSpace(req.Subtitle),
		Content:      req.Content,
		IsEnabled:    enabled,
		SectionOrder: req.SectionOrder,
		UpdatedAt:    now,
	}

	if strings.TrimSpace(id) == "" {
		section.ID = s.genID.Generate()
		section.CreatedAt = now
		if err := s.sections.Create(ctx, &section); err != nil {
			return domain.LandingSection{}, err
		}
		return section, nil
	}

	parsed, err := parseID(id)
	if err != nil {
		return domain.LandingSection{}, err
	}
	existing, err := s.sections.FindOne(ctx, &domain.LandingSection{ID: parsed})
	if err != nil {
		return domain.LandingSection{}, err
	}
	if existing == nil {
		return domain.LandingSection{}, domain.ErrNotFound
	}

	section.ID = existing.ID
	section.CreatedAt = existing.CreatedAt
	if err := s.sections.Save(ctx, &section); err != nil {
		return domain.LandingSection{}, err
	}
	return section, nil
}

func (s *Service) DeleteSection(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}
	existing, err := s.sections.FindOne(ctx, &domain.LandingSection{ID: parsed})
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return s.sections.Delete(ctx, int64(parsed))
}

func (s *Service) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	items, err := s.testimonials.Find(ctx, nil, option.OrderBy("created_at desc, id desc"))
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) UpsertTestimonial(ctx context.Context, id string, req domain.UpsertTestimonialRequest) (domain.Testimonial, error) {
	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return domain.Testimonial{}, domain.ErrInvalidClientName
	}
	if req.Rating < 1 || req.Rating > 5 {
		return domain.Testimonial{}, domain.ErrInvalidRating
	}

	featured := false
	if req.IsFeatured != nil {
		featured = *req.IsFeatured
	}

	now := time.Now().UTC()
	testimonial := domain.Testimonial{
		ClientName: name,
		ClientRole: strings.TrimSpace(req.ClientRole),
		Content:    req.Content,
		Rating:     req.Rating,
		IsFeatured: featured,
		UpdatedAt:  now,
	}

	if strings.TrimSpace(id) == "" {
		testimonial.ID = s.genID.Generate()
		testimonial.CreatedAt = now
		if err := s.testimonials.Create(ctx, &testimonial); err != nil {
			return domain.Testimonial{}, err
		}
		return testimonial, nil
	}

	parsed, err := parseID(id)
	if err != nil {
		return domain.Testimonial{}, err
	}
	existing, err := s.testimonials.FindOne(ctx, &domain.Testimonial{ID: parsed})
	if err != nil {
		return domain.Testimonial{}, err
	}
	if existing == nil {
		return domain.Testimonial{}, domain.ErrNotFound
	}

	testimonial.ID = existing.ID
	testimonial.CreatedAt = existing.CreatedAt
	if err := s.testimonials.Save(ctx, &testimonial); err != nil {
		return domain.Testimonial{}, err
	}
	return testimonial, nil
}

func (s *Service) DeleteTestimonial(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}
	existing, err := s.testimonials.FindOne(ctx, &domain.Testimonial{ID: parsed})
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return s.testimonials.Delete(ctx, int64(parsed))
}

func (s *Service) ListFooterColumns(ctx context.Context) ([]domain.FooterColumn, error) {
	items, err := s.footer.Find(ctx, nil, option.OrderBy("column_order asc, id asc"))
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) UpsertFooterColumn(ctx context.Context, id string, req domain.UpsertFooterColumnRequest) (domain.FooterColumn, error) {
	title := strings.TrimSpace(req.ColumnTitle)
	if title == "" {
		return domain.FooterColumn{}, domain.ErrInvalidColumnTitle
	}

	now := time.Now().UTC()
	column := domain.FooterColumn{
		ColumnTitle: title,
		Links:       req.Links,
		ColumnOrder: req.ColumnOrder,
		UpdatedAt:   now,
	}

	if strings.TrimSpace(id) == "" {
		column.ID = s.genID.Generate()
		column.CreatedAt = now
		if err := s.footer.Create(ctx, &column); err != nil {
			return domain.FooterColumn{}, err
		}
		return column, nil
	}

	parsed, err := parseID(id)
	if err != nil {
		return domain.FooterColumn{}, err
	}
	existing, err := s.footer.FindOne(ctx, &domain.FooterColumn{ID: parsed})
	if err != nil {
		return domain.FooterColumn{}, err
	}
	if existing == nil {
		return domain.FooterColumn{}, domain.ErrNotFound
	}

	column.ID = existing.ID
	column.CreatedAt = existing.CreatedAt
	if err := s.footer.Save(ctx, &column); err != nil {
		return domain.FooterColumn{}, err
	}
	return column, nil
}

func (s *Service) DeleteFooterColumn(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}
	existing, err := s.footer.FindOne(ctx, &domain.FooterColumn{ID: parsed})
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return s.footer.Delete(ctx, int64(parsed))
}

func collect[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out
}

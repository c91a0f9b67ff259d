// Package taxonomy implements the category/subcategory tree: CRUD with
// consistent delete cascades, batch contact assignment, the unsorted and
// needs-refinement sets, membership statistics, and the default seed.
package taxonomy

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/socialcapital-app/backend/internal/config"
	"github.com/socialcapital-app/backend/internal/domain"
)

//go:generate moq -out mocks_moq_test.go . ContactRepo CategoryRepo SubcategoryRepo ContactCategoryRepo ContactSubcategoryRepo TxManager

// ContactRepo is the contact store surface this service needs.
type ContactRepo interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Contact, error)
}

// CategoryRepo is the category store surface this service needs.
type CategoryRepo interface {
	ListAll(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (domain.Category, error)
	Upsert(ctx context.Context, c domain.Category) error
	Delete(ctx context.Context, id string) error
}

// SubcategoryRepo is the subcategory store surface this service needs.
type SubcategoryRepo interface {
	GetByID(ctx context.Context, id string) (domain.Subcategory, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.Subcategory, error)
	Upsert(ctx context.Context, s domain.Subcategory) error
	Delete(ctx context.Context, id string) error
	DeleteByCategory(ctx context.Context, categoryID string) error
}

// ContactCategoryRepo is the contact-category relation surface this
// service needs.
type ContactCategoryRepo interface {
	Add(ctx context.Context, contactID, categoryID string) error
	Remove(ctx context.Context, contactID, categoryID string) error
	ListByContact(ctx context.Context, contactID string) ([]string, error)
	ListContacts(ctx context.Context, categoryID string, limit, offset int) ([]string, error)
	Count(ctx context.Context, categoryID string) (int, error)
	AssignedContactIDs(ctx context.Context) ([]string, error)
	DeleteByCategory(ctx context.Context, categoryID string) error
}

// ContactSubcategoryRepo is the contact-subcategory relation surface this
// service needs.
type ContactSubcategoryRepo interface {
	Add(ctx context.Context, contactID, subcategoryID string) error
	Remove(ctx context.Context, contactID, subcategoryID string) error
	ListByContact(ctx context.Context, contactID string) ([]string, error)
	ListContacts(ctx context.Context, subcategoryID string, limit, offset int) ([]string, error)
	Count(ctx context.Context, subcategoryID string) (int, error)
	ContactIDsInSubcategories(ctx context.Context, subcategoryIDs []string) ([]string, error)
	DeleteBySubcategory(ctx context.Context, subcategoryID string) error
	DeleteBySubcategories(ctx context.Context, subcategoryIDs []string) error
}

// TxManager runs a function inside one storage transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the taxonomy use cases.
type Service struct {
	log      *slog.Logger
	contacts ContactRepo
	cats     CategoryRepo
	subs     SubcategoryRepo
	cc       ContactCategoryRepo
	csc      ContactSubcategoryRepo
	tx       TxManager
	cfg      config.ScoringConfig
}

// New creates the taxonomy service.
func New(
	log *slog.Logger,
	contacts ContactRepo,
	cats CategoryRepo,
	subs SubcategoryRepo,
	cc ContactCategoryRepo,
	csc ContactSubcategoryRepo,
	tx TxManager,
	cfg config.ScoringConfig,
) *Service {
	return &Service{
		log:      log.With(slog.String("service", "taxonomy")),
		contacts: contacts,
		cats:     cats,
		subs:     subs,
		cc:       cc,
		csc:      csc,
		tx:       tx,
		cfg:      cfg,
	}
}

// ---------------------------------------------------------------------------
// Category / subcategory CRUD
// ---------------------------------------------------------------------------

// ListCategories returns every category, oldest first.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.cats.ListAll(ctx)
}

// ListSubcategories returns a category's subcategories, sort order first.
func (s *Service) ListSubcategories(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	return s.subs.ListByCategory(ctx, categoryID)
}

// CreateCategory creates a category with a case-insensitively unique name.
func (s *Service) CreateCategory(ctx context.Context, name string, typ domain.CategoryType) (domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Category{}, domain.NewValidationError("name", "must not be empty")
	}
	if !typ.IsValid() {
		return domain.Category{}, domain.NewValidationError("type", "unknown category type")
	}

	existing, err := s.cats.ListAll(ctx)
	if err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return domain.Category{}, fmt.Errorf("category %q: %w", name, domain.ErrAlreadyExists)
		}
	}

	now := time.Now().UTC()
	cat := domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cats.Upsert(ctx, cat); err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}

// CreateSubcategory creates a subcategory under a category whose type
// supports refinement. The name is unique within the category,
// case-insensitively.
func (s *Service) CreateSubcategory(ctx context.Context, categoryID, name string, sortOrder *int) (domain.Subcategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Subcategory{}, domain.NewValidationError("name", "must not be empty")
	}

	cat, err := s.cats.GetByID(ctx, categoryID)
	if err != nil {
		return domain.Subcategory{}, fmt.Errorf("create subcategory: %w", err)
	}
	if !cat.Type.HasSubcategories() {
		return domain.Subcategory{}, domain.NewValidationError("category_id", "category does not hold subcategories")
	}

	existing, err := s.subs.ListByCategory(ctx, categoryID)
	if err != nil {
		return domain.Subcategory{}, fmt.Errorf("create subcategory: %w", err)
	}
	for _, sub := range existing {
		if strings.EqualFold(sub.Name, name) {
			return domain.Subcategory{}, fmt.Errorf("subcategory %q: %w", name, domain.ErrAlreadyExists)
		}
	}

	now := time.Now().UTC()
	sub := domain.Subcategory{
		ID:         uuid.NewString(),
		CategoryID: categoryID,
		Name:       name,
		SortOrder:  sortOrder,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.subs.Upsert(ctx, sub); err != nil {
		return domain.Subcategory{}, fmt.Errorf("create subcategory: %w", err)
	}
	return sub, nil
}

// DeleteCategory removes a category with its full cascade in one
// transaction: the subcategories, every contact link into them, and every
// direct contact link into the category itself.
func (s *Service) DeleteCategory(ctx context.Context, categoryID string) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.cats.GetByID(ctx, categoryID); err != nil {
			return err
		}

		subs, err := s.subs.ListByCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		subIDs := make([]string, 0, len(subs))
		for _, sub := range subs {
			subIDs = append(subIDs, sub.ID)
		}

		if err := s.csc.DeleteBySubcategories(ctx, subIDs); err != nil {
			return err
		}
		if err := s.subs.DeleteByCategory(ctx, categoryID); err != nil {
			return err
		}
		if err := s.cc.DeleteByCategory(ctx, categoryID); err != nil {
			return err
		}
		return s.cats.Delete(ctx, categoryID)
	})
	if err != nil {
		return fmt.Errorf("delete category %s: %w", categoryID, err)
	}

	s.log.Info("category deleted", slog.String("category_id", categoryID))
	return nil
}

// DeleteSubcategory removes a subcategory and its contact links in one
// transaction.
func (s *Service) DeleteSubcategory(ctx context.Context, subcategoryID string) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.subs.GetByID(ctx, subcategoryID); err != nil {
			return err
		}
		if err := s.csc.DeleteBySubcategory(ctx, subcategoryID); err != nil {
			return err
		}
		return s.subs.Delete(ctx, subcategoryID)
	})
	if err != nil {
		return fmt.Errorf("delete subcategory %s: %w", subcategoryID, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Assignment
// ---------------------------------------------------------------------------

// AssignContactsToCategory links each contact to the category. Re-assigning
// an existing pair is a no-op, so the batch is idempotent.
func (s *Service) AssignContactsToCategory(ctx context.Context, contactIDs []string, categoryID string) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.cats.GetByID(ctx, categoryID); err != nil {
			return err
		}
		for _, contactID := range contactIDs {
			if err := s.cc.Add(ctx, contactID, categoryID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("assign contacts to category %s: %w", categoryID, err)
	}
	return nil
}

// AssignContactsToSubcategory links each contact to the subcategory and,
// to keep refinement implying membership, to its parent category.
func (s *Service) AssignContactsToSubcategory(ctx context.Context, contactIDs []string, subcategoryID string) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		sub, err := s.subs.GetByID(ctx, subcategoryID)
		if err != nil {
			return err
		}
		for _, contactID := range contactIDs {
			if err := s.csc.Add(ctx, contactID, subcategoryID); err != nil {
				return err
			}
			if err := s.cc.Add(ctx, contactID, sub.CategoryID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("assign contacts to subcategory %s: %w", subcategoryID, err)
	}
	return nil
}

// RemoveContactFromCategory unlinks a contact from a category.
func (s *Service) RemoveContactFromCategory(ctx context.Context, contactID, categoryID string) error {
	return s.cc.Remove(ctx, contactID, categoryID)
}

// RemoveContactFromSubcategory unlinks a contact from a subcategory. The
// parent category link stays: dropping a refinement does not expel the
// contact from the category.
func (s *Service) RemoveContactFromSubcategory(ctx context.Context, contactID, subcategoryID string) error {
	return s.csc.Remove(ctx, contactID, subcategoryID)
}

// CategoriesOfContact returns the category IDs a contact belongs to.
func (s *Service) CategoriesOfContact(ctx context.Context, contactID string) ([]string, error) {
	return s.cc.ListByContact(ctx, contactID)
}

// SubcategoriesOfContact returns the subcategory IDs a contact belongs to.
func (s *Service) SubcategoriesOfContact(ctx context.Context, contactID string) ([]string, error) {
	return s.csc.ListByContact(ctx, contactID)
}

// ContactsInCategory returns the contact IDs in a category, insertion
// ordered and paginated.
func (s *Service) ContactsInCategory(ctx context.Context, categoryID string, limit, offset int) ([]string, error) {
	return s.cc.ListContacts(ctx, categoryID, limit, offset)
}

// ContactsInSubcategory returns the contact IDs in a subcategory,
// insertion ordered and paginated.
func (s *Service) ContactsInSubcategory(ctx context.Context, subcategoryID string, limit, offset int) ([]string, error) {
	return s.csc.ListContacts(ctx, subcategoryID, limit, offset)
}

// ---------------------------------------------------------------------------
// Derived sets and stats
// ---------------------------------------------------------------------------

// UnsortedContactIDs returns the contacts that belong to no category at
// all, in search order. The whole contact list is enumerated through the
// configured cap; the engine targets personal-scale datasets.
func (s *Service) UnsortedContactIDs(ctx context.Context) ([]string, error) {
	all, err := s.contacts.Search(ctx, "", s.cfg.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("unsorted contacts: %w", err)
	}

	assigned, err := s.cc.AssignedContactIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("unsorted contacts: %w", err)
	}
	assignedSet := make(map[string]struct{}, len(assigned))
	for _, id := range assigned {
		assignedSet[id] = struct{}{}
	}

	out := make([]string, 0, len(all))
	for _, c := range all {
		if _, ok := assignedSet[c.ID]; !ok {
			out = append(out, c.ID)
		}
	}
	return out, nil
}

// ContactsNeedingRefinement returns the contacts that are in the category
// but not linked to any of its subcategories. Simple categories have no
// refinement, so the set is empty for them.
func (s *Service) ContactsNeedingRefinement(ctx context.Context, categoryID string) ([]string, error) {
	cat, err := s.cats.GetByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("contacts needing refinement: %w", err)
	}
	if !cat.Type.HasSubcategories() {
		return []string{}, nil
	}

	subs, err := s.subs.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("contacts needing refinement: %w", err)
	}
	subIDs := make([]string, 0, len(subs))
	for _, sub := range subs {
		subIDs = append(subIDs, sub.ID)
	}

	inCategory, err := s.cc.ListContacts(ctx, categoryID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("contacts needing refinement: %w", err)
	}
	refined, err := s.csc.ContactIDsInSubcategories(ctx, subIDs)
	if err != nil {
		return nil, fmt.Errorf("contacts needing refinement: %w", err)
	}
	refinedSet := make(map[string]struct{}, len(refined))
	for _, id := range refined {
		refinedSet[id] = struct{}{}
	}

	out := make([]string, 0, len(inCategory))
	for _, id := range inCategory {
		if _, ok := refinedSet[id]; !ok {
			out = append(out, id)
		}
	}
	return out, nil
}

// CategoryStats returns the exact distinct-contact count per category, in
// category list order.
func (s *Service) CategoryStats(ctx context.Context) ([]domain.CategoryStats, error) {
	cats, err := s.cats.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}

	out := make([]domain.CategoryStats, 0, len(cats))
	for _, cat := range cats {
		n, err := s.cc.Count(ctx, cat.ID)
		if err != nil {
			return nil, fmt.Errorf("category stats: %w", err)
		}
		out = append(out, domain.CategoryStats{CategoryID: cat.ID, ContactsCount: n})
	}
	return out, nil
}

// SubcategoryStats returns per-subcategory distinct-contact counts plus
// each subcategory's share of the parent category's membership.
func (s *Service) SubcategoryStats(ctx context.Context, categoryID string) ([]domain.SubcategoryStats, error) {
	subs, err := s.subs.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("subcategory stats: %w", err)
	}
	total, err := s.cc.Count(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("subcategory stats: %w", err)
	}

	out := make([]domain.SubcategoryStats, 0, len(subs))
	for _, sub := range subs {
		n, err := s.csc.Count(ctx, sub.ID)
		if err != nil {
			return nil, fmt.Errorf("subcategory stats: %w", err)
		}
		percent := 0
		if total > 0 {
			percent = int(math.Round(float64(n) / float64(total) * 100))
		}
		out = append(out, domain.SubcategoryStats{
			SubcategoryID:     sub.ID,
			ContactsCount:     n,
			PercentInCategory: percent,
		})
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Seed
// ---------------------------------------------------------------------------

type seedDef struct {
	name    string
	typ     domain.CategoryType
	subcats []string
}

var defaultTaxonomy = []seedDef{
	{name: "Семья", typ: domain.CategoryTypeSimple},
	{name: "Друзья", typ: domain.CategoryTypeSimple},
	{name: "Близкие", typ: domain.CategoryTypeSimple},
	{name: "Знакомые", typ: domain.CategoryTypeSimple},
	{name: "Старшие товарищи", typ: domain.CategoryTypeFixed,
		subcats: []string{"По бизнесу", "По карьере", "Личностный рост", "Прочее"}},
	{name: "Коллеги", typ: domain.CategoryTypeFixed,
		subcats: []string{"Руководители", "Свой круг", "Параллель", "Подчинённые"}},
	{name: "Работал раньше", typ: domain.CategoryTypeOrg},
	{name: "По интересам", typ: domain.CategoryTypeInterest},
}

// SeedDefaults creates the default categories and their fixed
// subcategories. Matching is by name, so reseeding an already-seeded or
// partially customized database only fills the gaps.
func (s *Service) SeedDefaults(ctx context.Context) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		now := time.Now().UTC()

		existing, err := s.cats.ListAll(ctx)
		if err != nil {
			return err
		}
		byName := make(map[string]domain.Category, len(existing))
		for _, c := range existing {
			byName[c.Name] = c
		}

		for _, def := range defaultTaxonomy {
			cat, ok := byName[def.name]
			if !ok {
				cat = domain.Category{
					ID:        uuid.NewString(),
					Name:      def.name,
					Type:      def.typ,
					CreatedAt: now,
					UpdatedAt: now,
				}
				if err := s.cats.Upsert(ctx, cat); err != nil {
					return err
				}
			}

			if len(def.subcats) == 0 {
				continue
			}
			current, err := s.subs.ListByCategory(ctx, cat.ID)
			if err != nil {
				return err
			}
			have := make(map[string]struct{}, len(current))
			for _, sub := range current {
				have[sub.Name] = struct{}{}
			}
			for i, name := range def.subcats {
				if _, ok := have[name]; ok {
					continue
				}
				order := i
				sub := domain.Subcategory{
					ID:         uuid.NewString(),
					CategoryID: cat.ID,
					Name:       name,
					SortOrder:  &order,
					CreatedAt:  now,
					UpdatedAt:  now,
				}
				if err := s.subs.Upsert(ctx, sub); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed default taxonomy: %w", err)
	}

	s.log.Info("default taxonomy seeded")
	return nil
}

package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"college-tracker/internal/common/errors"
	"college-tracker/internal/common/validation"
	"college-tracker/internal/models"

	"github.com/spf13/cast"
)

// AddCollege stores a new college and its default tracker row. An empty or
// already used ID is replaced with a fresh one; an empty status becomes not-started.
func (s *Store) AddCollege(ctx context.Context, c models.College) (added models.College, err error) {
	defer func() { record("add_college", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	c = c.Clone()
	c.Name = strings.TrimSpace(c.Name)
	if c.ID == "" || s.collegeIndex(c.ID) >= 0 {
		c.ID = s.newID()
	}
	if c.Status == "" {
		c.Status = models.StatusNotStarted
	}
	now := s.now()
	c.AddedDate = now.Format(dateLayout)
	c.LastUpdated = now.UTC().Format(time.RFC3339)

	if err := validateCollege(c); err != nil {
		return models.College{}, err
	}

	colleges := append(cloneColleges(s.colleges), c)
	tasks := append(cloneTasks(s.tasks), newTaskRow(c, c.LastUpdated))

	if err := s.persistBoth(ctx, KeyColleges, colleges, s.colleges, KeyTasks, tasks); err != nil {
		return models.College{}, err
	}
	s.colleges, s.tasks = colleges, tasks

	s.log.Info("college added", map[string]interface{}{"collegeId": c.ID, "name": c.Name})
	return c.Clone(), nil
}

// UpdateCollege applies a partial update. A name change is mirrored into the tracker row.
func (s *Store) UpdateCollege(ctx context.Context, id string, patch models.CollegePatch) (updated models.College, err error) {
	defer func() { record("update_college", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateCollegeLocked(ctx, id, patch)
}

func (s *Store) updateCollegeLocked(ctx context.Context, id string, patch models.CollegePatch) (models.College, error) {
	colleges, tasks, updated, err := s.planCollegeUpdate(id, patch)
	if err != nil {
		return models.College{}, err
	}

	if tasks == nil {
		if err := s.persist(ctx, KeyColleges, colleges); err != nil {
			return models.College{}, err
		}
		s.colleges = colleges
		return updated.Clone(), nil
	}

	if err := s.persistBoth(ctx, KeyColleges, colleges, s.colleges, KeyTasks, tasks); err != nil {
		return models.College{}, err
	}
	s.colleges, s.tasks = colleges, tasks
	return updated.Clone(), nil
}

// planCollegeUpdate applies patch to copies of the state without persisting.
// tasks is nil when no tracker row changes.
func (s *Store) planCollegeUpdate(id string, patch models.CollegePatch) ([]models.College, []models.ApplicationTask, models.College, error) {
	i := s.collegeIndex(id)
	if i < 0 {
		return nil, nil, models.College{}, errors.NewNotFoundError("college", id)
	}

	colleges := cloneColleges(s.colleges)
	c := &colleges[i]
	oldName := c.Name
	patch.Apply(c)
	c.Name = strings.TrimSpace(c.Name)
	c.LastUpdated = s.timestamp()

	if err := validateCollege(*c); err != nil {
		return nil, nil, models.College{}, err
	}

	var tasks []models.ApplicationTask
	if c.Name != oldName {
		if j := s.taskIndex(id); j >= 0 {
			tasks = cloneTasks(s.tasks)
			tasks[j].College = c.Name
		}
	}
	return colleges, tasks, *c, nil
}

// SetStatus moves a college to any status; transitions are unconstrained.
func (s *Store) SetStatus(ctx context.Context, id string, status models.CollegeStatus) (updated models.College, err error) {
	defer func() { record("set_status", err) }()

	if !status.Valid() {
		return models.College{}, errors.NewValidationFailedError(fmt.Sprintf("unknown status %q", status))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateCollegeLocked(ctx, id, models.CollegePatch{Status: &status})
}

// RemoveCollege deletes a college together with its tracker row.
func (s *Store) RemoveCollege(ctx context.Context, id string) (err error) {
	defer func() { record("remove_college", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collegeIndex(id) < 0 {
		return errors.NewNotFoundError("college", id)
	}

	colleges := make([]models.College, 0, len(s.colleges))
	for _, c := range s.colleges {
		if c.ID != id {
			colleges = append(colleges, c.Clone())
		}
	}
	tasks := make([]models.ApplicationTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.CollegeID != id {
			tasks = append(tasks, t.Clone())
		}
	}

	if err := s.persistBoth(ctx, KeyColleges, colleges, s.colleges, KeyTasks, tasks); err != nil {
		return err
	}
	s.colleges, s.tasks = colleges, tasks

	s.log.Info("college removed", map[string]interface{}{"collegeId": id})
	return nil
}

// UpdateTaskCell sets one tracker cell. Setting admissionResult also moves the
// college status (Admitted→admitted, Rejected→rejected, Waitlisted→waitlisted,
// Pending→in-progress).
func (s *Store) UpdateTaskCell(ctx context.Context, collegeID, columnID string, value interface{}) (task models.ApplicationTask, err error) {
	defer func() { record("update_task", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	j := s.taskIndex(collegeID)
	if j < 0 {
		return models.ApplicationTask{}, errors.NewNotFoundError("application task", collegeID)
	}
	k := s.columnIndex(columnID)
	if k < 0 {
		return models.ApplicationTask{}, errors.NewNotFoundError("column", columnID)
	}
	col := s.columns[k]
	if col.ID == models.ColumnCollege || (col.Editable != nil && !*col.Editable) {
		return models.ApplicationTask{}, errors.NewValidationFailedError(fmt.Sprintf("column %q is not editable", col.ID))
	}

	coerced, err := coerceCell(col, value)
	if err != nil {
		return models.ApplicationTask{}, err
	}

	tasks := cloneTasks(s.tasks)
	if err := tasks[j].Set(columnID, coerced); err != nil {
		return models.ApplicationTask{}, errors.NewValidationFailedError(err.Error())
	}
	var colleges []models.College
	if columnID == models.ColumnAdmissionResult {
		status, _ := tasks[j].AdmissionResult.CollegeStatus()
		if i := s.collegeIndex(collegeID); i >= 0 && s.colleges[i].Status != status {
			planned, _, _, planErr := s.planCollegeUpdate(collegeID, models.CollegePatch{Status: &status})
			if planErr != nil {
				return models.ApplicationTask{}, planErr
			}
			colleges = planned
		}
	}

	if colleges == nil {
		if err := s.persist(ctx, KeyTasks, tasks); err != nil {
			return models.ApplicationTask{}, err
		}
		s.tasks = tasks
		return tasks[j].Clone(), nil
	}

	if err := s.persistBoth(ctx, KeyTasks, tasks, s.tasks, KeyColleges, colleges); err != nil {
		return models.ApplicationTask{}, err
	}
	s.tasks, s.colleges = tasks, colleges
	return tasks[j].Clone(), nil
}

// coerceCell converts CLI text into the column's value type.
func coerceCell(col models.TaskColumn, value interface{}) (interface{}, error) {
	invalid := func(err error) error {
		return errors.NewValidationFailedError(fmt.Sprintf("column %q: %v", col.ID, err))
	}

	switch col.Type {
	case models.ColumnCheckbox:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return nil, invalid(err)
		}
		return b, nil
	case models.ColumnNumber:
		f, err := cast.ToFloat64E(value)
		if err != nil {
			return nil, invalid(err)
		}
		return f, nil
	case models.ColumnDate:
		str, err := cast.ToStringE(value)
		if err != nil {
			return nil, invalid(err)
		}
		if str != "" {
			if _, err := time.Parse(dateLayout, str); err != nil {
				return nil, invalid(fmt.Errorf("expected a YYYY-MM-DD date"))
			}
		}
		return str, nil
	case models.ColumnSelect:
		str, err := cast.ToStringE(value)
		if err != nil {
			return nil, invalid(err)
		}
		if len(col.Options) > 0 && !containsString(col.Options, str) {
			return nil, invalid(fmt.Errorf("value must be one of %v", col.Options))
		}
		return str, nil
	default:
		str, err := cast.ToStringE(value)
		if err != nil {
			return nil, invalid(err)
		}
		return str, nil
	}
}

// AddColumn appends a checkbox column to the tracker schema.
func (s *Store) AddColumn(ctx context.Context, name string) (col models.TaskColumn, err error) {
	defer func() { record("add_column", err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.TaskColumn{}, errors.NewValidationFailedError("column name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	col = models.TaskColumn{ID: s.newID(), Name: name, Type: models.ColumnCheckbox}
	columns := append(cloneColumns(s.columns), col)
	if err := s.persist(ctx, KeyColumns, columns); err != nil {
		return models.TaskColumn{}, err
	}
	s.columns = columns
	return col, nil
}

// RenameColumn changes a column's display name; its id and values are kept.
func (s *Store) RenameColumn(ctx context.Context, id, name string) (err error) {
	defer func() { record("rename_column", err) }()

	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewValidationFailedError("column name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.columnIndex(id)
	if k < 0 {
		return errors.NewNotFoundError("column", id)
	}
	columns := cloneColumns(s.columns)
	columns[k].Name = name
	if err := s.persist(ctx, KeyColumns, columns); err != nil {
		return err
	}
	s.columns = columns
	return nil
}

// DeleteColumn removes a column and its values from every row. The college
// column cannot be deleted.
func (s *Store) DeleteColumn(ctx context.Context, id string) (err error) {
	defer func() { record("delete_column", err) }()

	if id == models.ColumnCollege {
		return errors.NewValidationFailedError("the college column cannot be deleted")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	k := s.columnIndex(id)
	if k < 0 {
		return errors.NewNotFoundError("column", id)
	}

	columns := make([]models.TaskColumn, 0, len(s.columns)-1)
	for _, c := range cloneColumns(s.columns) {
		if c.ID != id {
			columns = append(columns, c)
		}
	}
	tasks := cloneTasks(s.tasks)
	for i := range tasks {
		tasks[i].Delete(id)
	}

	if err := s.persistBoth(ctx, KeyColumns, columns, s.columns, KeyTasks, tasks); err != nil {
		return err
	}
	s.columns, s.tasks = columns, tasks
	return nil
}

// SaveProfile replaces the user profile.
func (s *Store) SaveProfile(ctx context.Context, p models.UserProfile) (saved *models.UserProfile, err error) {
	defer func() { record("save_profile", err) }()

	if p.Email != "" && !validation.ValidateEmail(p.Email) {
		return nil, errors.NewValidationFailedError(fmt.Sprintf("invalid email %q", p.Email))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile := p.Clone()
	now := s.timestamp()
	if profile.CreatedAt == "" {
		if s.profile != nil && s.profile.CreatedAt != "" {
			profile.CreatedAt = s.profile.CreatedAt
		} else {
			profile.CreatedAt = now
		}
	}
	profile.LastUpdated = now

	if err := s.persist(ctx, KeyProfile, profile); err != nil {
		return nil, err
	}
	s.profile = profile
	return profile.Clone(), nil
}

// OnboardingProfile builds the first profile from the onboarding answers.
// The name defaults to "User" and an unparseable grade to 12.
func OnboardingProfile(name, email, grade string) models.UserProfile {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "User"
	}
	level := models.GradeLevel(strings.TrimSpace(grade))
	if _, ok := level.Int(); !ok {
		level = "12"
	}
	return models.UserProfile{
		Name:     name,
		Email:    strings.TrimSpace(email),
		Grade:    level,
		Subjects: []models.Subject{},
	}
}

func validateCollege(c models.College) error {
	result, err := collegeSchema.Validate(c)
	if err != nil {
		return errors.NewValidationFailedError(err.Error())
	}
	if !result.Valid {
		return errors.NewValidationFailedError(strings.Join(result.GetErrorMessages(), "; "))
	}
	if c.PortalLink != "" && !validation.ValidateURL(c.PortalLink) {
		return errors.NewValidationFailedError(fmt.Sprintf("invalid portal link %q", c.PortalLink))
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

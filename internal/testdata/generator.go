// Package testdata fills empty collections with sample records.
package testdata

import (
	"context"
	"math/rand"

	"github.com/jask/studybunny/internal/record"
)

// Collection is the part of a collection store Seed needs.
type Collection[R record.Record] interface {
	Load(ctx context.Context) []R
	SaveAll(ctx context.Context, records []R) error
}

// Collections bundles the stores used by Seed.
type Collections struct {
	Marks    Collection[record.Mark]
	Homework Collection[record.Homework]
	Teachers Collection[record.Teacher]
}

// Seed writes sample records around today (YYYY-MM-DD). Collections that
// already hold records are left alone.
func Seed(ctx context.Context, c Collections, today string, rng *rand.Rand) error {
	if len(c.Marks.Load(ctx)) == 0 {
		marks, err := sampleMarks(today, rng)
		if err != nil {
			return err
		}
		if err := c.Marks.SaveAll(ctx, marks); err != nil {
			return err
		}
	}
	if len(c.Homework.Load(ctx)) == 0 {
		homework, err := sampleHomework(today, rng)
		if err != nil {
			return err
		}
		if err := c.Homework.SaveAll(ctx, homework); err != nil {
			return err
		}
	}
	if len(c.Teachers.Load(ctx)) == 0 {
		if err := c.Teachers.SaveAll(ctx, sampleTeachers(rng)); err != nil {
			return err
		}
	}
	return nil
}

func pick[T any](rng *rand.Rand, from []T) T { return from[rng.Intn(len(from))] }

// day returns the display and ISO forms of today shifted by n days.
func day(today string, n int) (display, iso string, err error) {
	iso, err = record.AddDays(today, n)
	if err != nil {
		return "", "", err
	}
	display, err = record.DisplayDate(iso)
	return display, iso, err
}

func sampleMarks(today string, rng *rand.Rand) ([]record.Mark, error) {
	out := make([]record.Mark, 0, 12)
	for i := 0; i < 12; i++ {
		display, iso, err := day(today, -rng.Intn(7))
		if err != nil {
			return nil, err
		}
		out = append(out, record.Mark{
			ID:      record.NewID(),
			Mark:    rng.Intn(5) + 1,
			Subject: pick(rng, record.DefaultSubjects),
			Reason:  pick(rng, record.DefaultReasons),
			Date:    display,
			DateISO: iso,
			Color:   pick(rng, record.Palette),
		})
	}
	return out, nil
}

func sampleHomework(today string, rng *rand.Rand) ([]record.Homework, error) {
	tasks := [][]string{
		{"Read chapter 3", "Answer questions 1-5"},
		{"Exercise 12 on page 40"},
		{"Write an essay plan", "Find two sources", "Draft the introduction"},
		{"Learn the vocabulary list"},
	}
	times := []string{"08:30", "09:30", "13:15", "18:05"}

	out := make([]record.Homework, 0, 6)
	for i := 0; i < 6; i++ {
		display, iso, err := day(today, rng.Intn(5))
		if err != nil {
			return nil, err
		}
		t := append([]string(nil), pick(rng, tasks)...)
		out = append(out, record.Homework{
			ID:           record.NewID(),
			Subject:      pick(rng, record.DefaultSubjects),
			Tasks:        t,
			DeadlineDate: display,
			DeadlineTime: pick(rng, times),
			Photo:        record.PlaceholderPhoto(),
			Color:        pick(rng, record.Palette),
			DateISO:      iso,
			Reason:       t[0],
			Completed:    rng.Intn(10) < 2,
		})
	}
	return out, nil
}

func sampleTeachers(rng *rand.Rand) []record.Teacher {
	names := []string{"Ms Smith", "Mr Jones", "Mrs Patel", "Mr Novak"}
	out := make([]record.Teacher, 0, len(names))
	for i, name := range names {
		avatar := record.Avatars[i%len(record.Avatars)]
		out = append(out, record.Teacher{
			ID:      record.NewID(),
			Name:    name,
			Subject: record.DefaultSubjects[i%len(record.DefaultSubjects)],
			Color:   pick(rng, record.Palette),
			Avatar:  &avatar,
		})
	}
	return out
}

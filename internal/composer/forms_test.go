package composer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/studybunny/internal/delivery"
	"github.com/jask/studybunny/internal/record"
)

func TestChoice(t *testing.T) {
	t.Parallel()

	c := NewChoice(record.DefaultSubjects, "")
	_, ok := c.Selected()
	require.False(t, ok)

	c.SetText("his")
	require.Equal(t, []string{"History"}, c.Filtered())
	require.True(t, c.CanCreate())

	require.NoError(t, c.Pick("History"))
	sel, ok := c.Selected()
	require.True(t, ok)
	require.Equal(t, "History", sel)
	require.Equal(t, "History", c.Text())
	require.False(t, c.CanCreate())

	// typing always drops the selection, even back to the same value
	c.SetText("History")
	_, ok = c.Selected()
	require.False(t, ok)

	require.Error(t, c.Pick("Art"))

	c.SetText("  Chemistry ")
	created, ok := c.Create()
	require.True(t, ok)
	require.Equal(t, "Chemistry", created)
	require.Contains(t, c.Options(), "Chemistry")
	sel, _ = c.Selected()
	require.Equal(t, "Chemistry", sel)

	c.SetText("   ")
	require.False(t, c.CanCreate())
	_, ok = c.Create()
	require.False(t, ok)
}

func TestChoiceSuggest(t *testing.T) {
	t.Parallel()

	c := NewChoice(record.DefaultSubjects, "")
	c.SetText("Hsitory")
	got, ok := c.Suggest()
	require.True(t, ok)
	require.Equal(t, "History", got)

	c.SetText("Astronomy")
	_, ok = c.Suggest()
	require.False(t, ok)

	c.SetText("maths")
	got, ok = c.Suggest()
	require.True(t, ok, "case differs, so create is offered")
	require.Equal(t, "Maths", got)
}

func TestChoiceEditAppendsCustomValueOnce(t *testing.T) {
	t.Parallel()

	c := NewChoice(record.DefaultSubjects, "Maths")
	require.Equal(t, record.DefaultSubjects, c.Options())

	c = NewChoice(record.DefaultSubjects, "Chemistry")
	require.Len(t, c.Options(), len(record.DefaultSubjects)+1)
	require.Len(t, record.DefaultSubjects, 4, "defaults untouched")
}

func TestMarkFormRanges(t *testing.T) {
	t.Parallel()

	f := NewMarkForm(nil)
	require.Error(t, f.SelectGrade(0))
	require.Error(t, f.SelectGrade(6))
	require.NoError(t, f.SelectGrade(1))
	require.Error(t, f.SetDate("01.09.24"))
	require.Error(t, f.SetDate("1999-12-31"))
	require.Empty(t, f.Date(), "rejected pick leaves the date unset")
	require.Error(t, f.ToggleColor("#123456"))
}

func TestMarkDateISOProperty(t *testing.T) {
	t.Parallel()

	for _, iso := range []string{"2024-06-05", "2000-01-31", "2099-12-01"} {
		f := NewMarkForm(nil)
		require.NoError(t, f.SelectGrade(2))
		require.NoError(t, f.Subject.Pick("English language"))
		require.NoError(t, f.Reason.Pick("Oral response"))
		require.NoError(t, f.SetDate(iso))
		require.NoError(t, f.ToggleColor(record.ColorGreen))

		m := f.Build("x")
		want, err := record.ISODate(m.Date)
		require.NoError(t, err)
		require.Equal(t, want, m.DateISO)
		require.Equal(t, iso, m.DateISO)
	}
}

func filledHomework(t *testing.T) (*Machine[record.Homework], *HomeworkForm, *delivery.Mailbox[record.Homework]) {
	t.Helper()
	box := delivery.NewMailbox[record.Homework]()
	m, f := NewHomework(nil, box)
	require.NoError(t, f.Subject.Pick("History"))
	mustFire(t, m, Next, HomeworkStepTasks)
	require.False(t, f.AddTask("   "))
	require.True(t, f.AddTask(" Read ch. 3 "))
	require.True(t, f.AddTask("Answer q1-5"))
	mustFire(t, m, Next, HomeworkStepDeadline)
	return m, f, box
}

func TestHomeworkTimeBoundaries(t *testing.T) {
	t.Parallel()

	m, f, _ := filledHomework(t)
	require.NoError(t, f.SetDeadlineDate("2025-04-30"))
	require.NoError(t, f.ToggleColor(record.ColorBlue))

	for _, bad := range []string{"24:00", "9:30", ""} {
		f.SetDeadlineTime(bad)
		_, err := m.Fire(Next)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, bad)
		require.Equal(t, "deadlineTime", verr.Field)
		require.Equal(t, HomeworkStepDeadline, m.State())
	}
	f.SetDeadlineTime("24:00")
	require.Equal(t, wrongTimeMessage, f.TimeError())

	for _, good := range []string{"00:00", "23:59"} {
		f.SetDeadlineTime(good)
		require.Empty(t, f.TimeError())
		require.True(t, m.CanNext(), good)
	}
}

func TestHomeworkBuildDefaults(t *testing.T) {
	t.Parallel()

	m, f, box := filledHomework(t)
	require.NoError(t, f.SetDeadlineDate("2025-04-30"))
	f.SetDeadlineTime("09:30")
	require.NoError(t, f.ToggleColor(record.ColorBlue))
	mustFire(t, m, Next, HomeworkStepPhoto)

	require.False(t, f.SetPhoto(PhotoResult{Cancelled: true, URI: "file:///x.png"}))
	require.Empty(t, f.PhotoURI())
	mustFire(t, m, Next, Review)
	mustFire(t, m, Finish, Finished)

	msg, ok := box.Consume()
	require.True(t, ok)
	hw := msg.Payload
	require.Equal(t, []string{"Read ch. 3", "Answer q1-5"}, hw.Tasks)
	require.Equal(t, "Read ch. 3", hw.Reason)
	require.Equal(t, record.PlaceholderPhoto(), hw.Photo)
	require.Equal(t, "2025-04-30", hw.DateISO)
	require.False(t, hw.Completed)
	require.NoError(t, record.NewValidator().Check(hw))
}

func TestHomeworkClearDeadlineAndRemoveTask(t *testing.T) {
	t.Parallel()

	m, f, _ := filledHomework(t)
	require.NoError(t, f.SetDeadlineDate("2025-04-30"))
	f.SetDeadlineTime("09:30")
	require.NoError(t, f.ToggleColor(record.ColorBlue))
	f.ClearDeadline()
	require.Empty(t, f.DeadlineDate())
	require.Empty(t, f.DeadlineTime())
	require.Empty(t, f.Color())
	require.False(t, m.CanNext())

	require.False(t, f.RemoveTask(5))
	require.True(t, f.RemoveTask(0))
	require.Equal(t, []string{"Answer q1-5"}, f.Tasks())
}

func TestHomeworkEditCarriesCompleted(t *testing.T) {
	t.Parallel()

	existing := record.Homework{
		ID: "h1", Subject: "History", Tasks: []string{"Read"}, DeadlineDate: "30.04.25", DeadlineTime: "09:30",
		Photo: record.Photo{URI: "file:///hw.png"}, Color: record.ColorBlue, DateISO: "2025-04-30", Reason: "Read", Completed: true,
	}
	m, _ := NewHomework(&existing, nil)
	mustFire(t, m, Finish, Finished)
	got, ok := m.Payload()
	require.True(t, ok)
	require.Equal(t, existing, got)
}

func TestTeacherImageRules(t *testing.T) {
	t.Parallel()

	box := delivery.NewMailbox[record.Teacher]()
	m, f := NewTeacher(nil, box)
	require.False(t, m.CanNext())

	require.False(t, f.PickPhoto(PhotoResult{Cancelled: true}))
	require.Error(t, f.ChooseAvatar("bunny9"))

	require.NoError(t, f.ChooseAvatar(record.AvatarBunny2))
	require.True(t, f.PickPhoto(PhotoResult{URI: "file:///ms.png"}))
	require.Equal(t, record.AvatarBunny2, f.Avatar(), "avatar retained under the photo")
	mustFire(t, m, Next, TeacherStepName)

	f.SetName("   ")
	_, err := m.Fire(Next)
	require.Error(t, err)
	f.SetName("  Ms Smith ")
	mustFire(t, m, Next, TeacherStepSubject)

	f.Subject.SetText(" Chemistry ")
	_, err = m.Fire(Next)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "color", verr.Field)
	require.NoError(t, f.ToggleColor(record.ColorGreen))
	mustFire(t, m, Next, Review)

	// choosing an avatar in review hides the photo
	require.NoError(t, m.Edit(func() { require.NoError(t, f.ChooseAvatar(record.AvatarBunny1)) }))
	require.Empty(t, f.PhotoURI())
	mustFire(t, m, Finish, Finished)

	msg, ok := box.Consume()
	require.True(t, ok)
	tch := msg.Payload
	require.Equal(t, "Ms Smith", tch.Name)
	require.Equal(t, "Chemistry", tch.Subject)
	require.Nil(t, tch.Photo)
	require.Equal(t, record.AvatarBunny1, *tch.Avatar)
	require.NoError(t, record.NewValidator().Check(tch))
}

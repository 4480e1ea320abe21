package record

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateTransforms(t *testing.T) {
	t.Parallel()

	display, err := DisplayDate("2024-09-01")
	require.NoError(t, err)
	require.Equal(t, "01.09.24", display)

	iso, err := ISODate("05.06.24")
	require.NoError(t, err)
	require.Equal(t, "2024-06-05", iso)

	for _, bad := range []string{"", "5.6.24", "2024-06-05", "31.02.24", "01/09/24"} {
		_, err := ISODate(bad)
		require.Error(t, err, bad)
	}

	_, err = DisplayDate("01.09.24")
	require.Error(t, err)
}

func TestDisplayRoundTripKeepsDay(t *testing.T) {
	t.Parallel()

	for _, iso := range []string{"2000-01-01", "2024-02-29", "2099-12-31"} {
		display, err := DisplayDate(iso)
		require.NoError(t, err)
		back, err := ISODate(display)
		require.NoError(t, err)
		require.Equal(t, iso, back)
	}
}

func TestDisplayDateRejectsOtherCenturies(t *testing.T) {
	t.Parallel()

	for _, iso := range []string{"1999-12-31", "2100-01-01", "1900-06-15"} {
		_, err := DisplayDate(iso)
		require.Error(t, err, iso)
	}
}

func TestImageFileSniffsContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	gif := filepath.Join(dir, "avatar.bin")
	require.NoError(t, os.WriteFile(gif, []byte("GIF89a\x01\x00\x01\x00"), 0o600))
	fake := filepath.Join(dir, "scan.jpg")
	require.NoError(t, os.WriteFile(fake, []byte("not really a jpeg"), 0o600))

	v := NewValidator()
	require.NoError(t, v.ImageFile(gif))
	require.ErrorIs(t, v.ImageFile(fake), ErrNotImage)
	require.ErrorIs(t, v.ImageFile(filepath.Join(dir, "gone.png")), ErrNotFile)
	require.ErrorIs(t, v.ImageFile(dir), ErrNotFile)
}

func TestValidTime(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"00:00": true,
		"23:59": true,
		"09:30": true,
		"18:05": true,
		"24:00": false,
		"9:30":  false,
		"12:60": false,
		"":      false,
		"12:5":  false,
	}
	for in, want := range cases {
		require.Equal(t, want, ValidTime(in), in)
	}
}

func TestTodayAndAddDays(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Australia/Melbourne")
	require.NoError(t, err)
	now := time.Date(2024, 8, 31, 20, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-09-01", Today(now, loc))
	require.Equal(t, "2024-08-31", Today(now, time.UTC))

	next, err := AddDays("2024-02-28", 2)
	require.NoError(t, err)
	require.Equal(t, "2024-03-01", next)
}

func TestNewIDUnique(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		require.NotEmpty(t, id)
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestTeacherDisplayImage(t *testing.T) {
	t.Parallel()

	avatar := AvatarBunny2
	tch := Teacher{Avatar: &avatar, Photo: &Photo{URI: "file:///me.png"}}
	photo, av, ok := tch.DisplayImage()
	require.True(t, ok)
	require.Nil(t, av)
	require.Equal(t, "file:///me.png", photo.URI)
	require.NotNil(t, tch.Avatar, "avatar is retained")

	tch.Photo = nil
	photo, av, ok = tch.DisplayImage()
	require.True(t, ok)
	require.Nil(t, photo)
	require.Equal(t, AvatarBunny2, *av)

	tch.Avatar = nil
	_, _, ok = tch.DisplayImage()
	require.False(t, ok)
}

func TestValidatorAcceptsWellFormedRecords(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	avatar := AvatarBunny1
	require.NoError(t, v.Check(Mark{ID: "1", Mark: 4, Subject: "Maths", Reason: "Homework", Date: "01.09.24", DateISO: "2024-09-01", Color: ColorOrange}))
	require.NoError(t, v.Check(Homework{
		ID: "2", Subject: "History", Tasks: []string{"Read ch. 3"}, DeadlineDate: "30.04.25",
		DeadlineTime: "09:30", Photo: PlaceholderPhoto(), Color: ColorBlue, DateISO: "2025-04-30", Reason: "Read ch. 3",
	}))
	require.NoError(t, v.Check(Teacher{ID: "3", Name: "Ms Smith", Subject: "Maths", Color: ColorGreen, Avatar: &avatar}))
}

func TestValidatorReportsFields(t *testing.T) {
	t.Parallel()

	v := NewValidator()

	err := v.Check(Mark{ID: "1", Mark: 7, Subject: " ", Reason: "Homework", Date: "01.09.24", DateISO: "2024-01-09", Color: "#000000"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, KindMark, verr.Kind)
	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	require.Contains(t, fields, "mark")
	require.Contains(t, fields, "subject")
	require.Contains(t, fields, "color")
	require.Equal(t, "dateISO does not match the display date", fields["dateISO"])

	err = v.Check(Homework{ID: "2", Subject: "History", DeadlineDate: "30.04.25", DeadlineTime: "9:30", Color: ColorBlue, DateISO: "2025-04-30"})
	require.ErrorAs(t, err, &verr)
	fields = map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	require.Contains(t, fields, "tasks")
	require.Equal(t, "deadlineTime must be a time as HH:mm, e.g. 09:30", fields["deadlineTime"])

	err = v.Check(Teacher{ID: "3", Name: "Ms Smith", Subject: "Maths", Color: ColorGreen})
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	require.Equal(t, "add a photo or choose a character", verr.Fields[0].Message)
}

//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const groupALink = "cal.example/feed/A-DAT044-EDA452-TDA555-TMV211.ics"

func TestSelectGroupShowsLink(t *testing.T) {
	t.Parallel()
	tf, svc := startApp(t)

	require.True(t, tf.SeePlain("Choose your group"))
	require.Empty(t, svc.Requests(), "Nothing is sent before a group is chosen")

	tf.Select()

	require.NoError(t, tf.WaitForE(func(string) bool {
		return contains(tf.SnapshotPlain(), "webcal://"+groupALink)
	}, 3*time.Second, "Should show the webcal link"))
	require.True(t, tf.SeePlain("https://"+groupALink))

	reqs := svc.Requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "A", reqs[0].Group)
	require.True(t, reqs[0].ModLocation)
	require.True(t, reqs[0].ModExam)
}

func TestToggleCourseRefreshesLink(t *testing.T) {
	t.Parallel()
	tf, svc := startApp(t)

	tf.Select()
	require.True(t, tf.SeePlain("webcal://"+groupALink))

	tf.NextSection()
	tf.Select() // drop EDA452

	require.True(t, tf.OutputContainsPlain("webcal://cal.example/feed/A-DAT044-TDA555-TMV211.ics", 3*time.Second))
	require.Len(t, svc.Requests(), 2)
}

func TestClearCoursesHidesLink(t *testing.T) {
	t.Parallel()
	tf, svc := startApp(t)

	tf.Select()
	require.True(t, tf.SeePlain("webcal://"+groupALink))

	tf.NextSection()
	tf.Clear()

	require.True(t, tf.SeePlain("Select at least one course"))
	require.Len(t, svc.Requests(), 1, "Clearing courses does not submit")
}

func TestServiceFailureKeepsLink(t *testing.T) {
	t.Parallel()
	tf, svc := startApp(t)

	tf.Select()
	require.True(t, tf.SeePlain("webcal://"+groupALink))

	svc.SetFailing(true)
	tf.NextSection()
	tf.Select()

	require.True(t, tf.SeePlain("showing the previous one"))
	require.True(t, tf.SeePlain("webcal://"+groupALink))
}

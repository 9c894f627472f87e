package logging

import (
	"testing"

	"go.viam.com/test"
)

func TestObservedLoggerCapturesFields(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Infow("simulation finished", "ticks", 42, "reason", "goal")

	entries := logs.FilterMessage("simulation finished").All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	fields := entries[0].ContextMap()
	test.That(t, fields["ticks"], test.ShouldEqual, int64(42))
	test.That(t, fields["reason"], test.ShouldEqual, "goal")
}

func TestSetLevelFiltersDebug(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.SetLevel(INFO)
	test.That(t, logger.GetLevel(), test.ShouldEqual, INFO)

	logger.Debug("hidden")
	logger.Warn("shown")
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	test.That(t, logs.All()[0].Message, test.ShouldEqual, "shown")
}

func TestSubloggerSharesLevel(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("segments")
	logger.SetLevel(WARN)

	sub.Info("dropped")
	sub.Errorf("bad %d", 1)
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	test.That(t, logs.All()[0].LoggerName, test.ShouldEqual, "segments")
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in  string
		out Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warning", WARN},
		{"error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.out)
		test.That(t, levelFromZap(level.AsZap()), test.ShouldEqual, tc.out)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBlankLoggerSync(t *testing.T) {
	logger := NewBlankLogger("blank")
	logger.Infow("nothing", "k", "v")
	test.That(t, logger.Sync(), test.ShouldBeNil)
}

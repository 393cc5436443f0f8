// Package testutil provides shared fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleLSS is a small splits file: three attempts, two finished, three segments.
// The second segment's gold was edited by hand and matches no history entry.
const SampleLSS = "\ufeff" + `<?xml version="1.0" encoding="UTF-8"?>
<Run version="1.7.0">
  <GameIcon />
  <GameName>Sample Quest</GameName>
  <CategoryName>Any%</CategoryName>
  <LayoutPath>C:\layouts\sample.lsl</LayoutPath>
  <Metadata />
  <Offset>00:00:00</Offset>
  <AttemptCount>3</AttemptCount>
  <AttemptHistory>
    <Attempt id="1" started="09/15/2022 03:47:14" isStartedSynced="True" ended="09/15/2022 04:16:08" isEndedSynced="True">
      <RealTime>00:28:40.5000000</RealTime>
    </Attempt>
    <Attempt id="2" started="09/16/2022 10:00:00" isStartedSynced="True" ended="09/16/2022 10:05:00" isEndedSynced="True" />
    <Attempt id="3" started="09/17/2022 20:00:00" isStartedSynced="True" ended="09/17/2022 20:27:00" isEndedSynced="True">
      <RealTime>00:25:00.0000000</RealTime>
    </Attempt>
  </AttemptHistory>
  <Segments>
    <Segment>
      <Name>Forest</Name>
      <Icon />
      <SplitTimes>
        <SplitTime name="Personal Best">
          <RealTime>00:09:30.0000000</RealTime>
        </SplitTime>
      </SplitTimes>
      <BestSegmentTime>
        <RealTime>00:09:30.0000000</RealTime>
      </BestSegmentTime>
      <SegmentHistory>
        <Time id="1">
          <RealTime>00:10:00.0000000</RealTime>
        </Time>
        <Time id="2">
          <RealTime>00:11:00.0000000</RealTime>
        </Time>
        <Time id="3">
          <RealTime>00:09:30.0000000</RealTime>
        </Time>
      </SegmentHistory>
    </Segment>
    <Segment>
      <Name>Temple</Name>
      <Icon />
      <SplitTimes>
        <SplitTime name="Personal Best">
          <RealTime>00:18:30.0000000</RealTime>
        </SplitTime>
      </SplitTimes>
      <BestSegmentTime>
        <RealTime>00:08:00.0000000</RealTime>
      </BestSegmentTime>
      <SegmentHistory>
        <Time id="1">
          <RealTime>00:10:00.0000000</RealTime>
        </Time>
        <Time id="2" />
        <Time id="3">
          <RealTime>00:09:00.0000000</RealTime>
        </Time>
      </SegmentHistory>
    </Segment>
    <Segment>
      <Name>Boss</Name>
      <Icon />
      <SplitTimes>
        <SplitTime name="Personal Best">
          <RealTime>00:25:00.0000000</RealTime>
        </SplitTime>
      </SplitTimes>
      <BestSegmentTime>
        <RealTime>00:06:30.0000000</RealTime>
      </BestSegmentTime>
      <SegmentHistory>
        <Time id="1">
          <RealTime>00:08:40.5000000</RealTime>
        </Time>
        <Time id="3">
          <RealTime>00:06:30.0000000</RealTime>
        </Time>
      </SegmentHistory>
    </Segment>
  </Segments>
  <AutoSplitterSettings />
</Run>
`

// WriteFile writes data to name inside dir and returns the full path.
func WriteFile(t testing.TB, dir, name string, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSample writes SampleLSS into a fresh temp dir and returns its path.
func WriteSample(t testing.TB) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "sample.lss", SampleLSS)
}

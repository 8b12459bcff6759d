package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ats-engine-go/internal/types"
)

func TestATSScoreCleanResume(t *testing.T) {
	s := NewATSScorer()
	result := s.Score(fullResume(600), &types.FormattingSignals{SourceFormat: "docx"})

	assert.Equal(t, 100.0, result.Score)
	assert.True(t, result.ATSFriendly)
	assert.Empty(t, result.Deductions)
}

func TestATSScoreImagesAndTables(t *testing.T) {
	s := NewATSScorer()
	signals := &types.FormattingSignals{
		ImagesCount:    2,
		TablesDetected: true,
		SourceFormat:   "docx",
	}

	result := s.Score(fullResume(600), signals)

	// 图片-40、表格-35，其余合规 → 25分，不达友好线
	assert.Equal(t, 25.0, result.Score)
	assert.False(t, result.ATSFriendly)
	assert.Len(t, result.Deductions, 2)
}

func TestATSScoreFloorsAtZero(t *testing.T) {
	s := NewATSScorer()
	signals := &types.FormattingSignals{
		ImagesCount:      3,
		TablesDetected:   true,
		FontsCount:       5,
		SourceFormat:     "pdf",
		BulletStyles:     []string{"•", "-", "*"},
		CapsLineRatio:    0.5,
		SpecialCharCount: 30,
		DateFormats:      []string{"01/2020", "Jan 2020", "2020-01"},
	}

	result := s.Score(&types.StructuredResume{}, signals)

	assert.Zero(t, result.Score)
	assert.False(t, result.ATSFriendly)
}

func TestATSScoreMissingContactAndSections(t *testing.T) {
	s := NewATSScorer()
	resume := &types.StructuredResume{
		Contact:   types.ContactInfo{Email: "a@b.com"},
		WordCount: 100,
	}

	result := s.Score(resume, &types.FormattingSignals{SourceFormat: "docx"})

	// 关键区块不足-25、缺电话-15、篇幅不达标-15 → 45
	assert.Equal(t, 45.0, result.Score)
	assert.False(t, result.ATSFriendly)
}

func TestATSScoreFriendlyThreshold(t *testing.T) {
	s := NewATSScorer()

	// 仅非docx一项扣分：85分仍然友好
	result := s.Score(fullResume(600), &types.FormattingSignals{SourceFormat: "pdf"})
	assert.Equal(t, 85.0, result.Score)
	assert.True(t, result.ATSFriendly)
}

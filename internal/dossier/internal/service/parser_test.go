// Copyright 2025 healthproof
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"testing"

	"github.com/healthproof/healthproof/internal/dossier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDossier(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		answer  string
		want    domain.Dossier
		wantErr error
	}{
		{
			name:   "标准格式",
			answer: "VERDICT: YES\nCONFIDENCE: 0.82\nSUMMARY: 多数证据支持该命题。",
			want: domain.Dossier{
				Verdict:    "YES",
				Confidence: 0.82,
				Summary:    "多数证据支持该命题。",
			},
		},
		{
			name:   "小写键",
			answer: "verdict: no\nconfidence: 0.6\nsummary: 证据不足。",
			want: domain.Dossier{
				Verdict:    "NO",
				Confidence: 0.6,
				Summary:    "证据不足。",
			},
		},
		{
			name:   "markdown加粗",
			answer: "**VERDICT:** YES\n**CONFIDENCE:** 0.9\n**SUMMARY:** 高质量试验一致。",
			want: domain.Dossier{
				Verdict:    "YES",
				Confidence: 0.9,
				Summary:    "高质量试验一致。",
			},
		},
		{
			name:   "中文冒号",
			answer: "VERDICT：YES\nCONFIDENCE：0.7\nSUMMARY：有一定支持。",
			want: domain.Dossier{
				Verdict:    "YES",
				Confidence: 0.7,
				Summary:    "有一定支持。",
			},
		},
		{
			name:   "百分数置信度",
			answer: "VERDICT: NO\nCONFIDENCE: 85%\nSUMMARY: 反对证据更强。",
			want: domain.Dossier{
				Verdict:    "NO",
				Confidence: 0.85,
				Summary:    "反对证据更强。",
			},
		},
		{
			name:   "大于1按百分数处理",
			answer: "VERDICT: YES\nCONFIDENCE: 75\nSUMMARY: ok",
			want: domain.Dossier{
				Verdict:    "YES",
				Confidence: 0.75,
				Summary:    "ok",
			},
		},
		{
			name:   "多行摘要",
			answer: "VERDICT: YES\nCONFIDENCE: 0.65\nSUMMARY:\n第一行。\n第二行。",
			want: domain.Dossier{
				Verdict:    "YES",
				Confidence: 0.65,
				Summary:    "第一行。\n第二行。",
			},
		},
		{
			name:   "置信度缺失给默认值",
			answer: "VERDICT: YES\nSUMMARY: 没给置信度。",
			want: domain.Dossier{
				Verdict:    "YES",
				Confidence: defaultConfidence,
				Summary:    "没给置信度。",
			},
		},
		{
			name:   "置信度非法给默认值",
			answer: "VERDICT: NO\nCONFIDENCE: very high\nSUMMARY: 说不清。",
			want: domain.Dossier{
				Verdict:    "NO",
				Confidence: defaultConfidence,
				Summary:    "说不清。",
			},
		},
		{
			name:   "摘要缺失回落到全文",
			answer: "VERDICT: NO\nCONFIDENCE: 0.55",
			want: domain.Dossier{
				Verdict:    "NO",
				Confidence: 0.55,
				Summary:    "VERDICT: NO\nCONFIDENCE: 0.55",
			},
		},
		{
			name:   "完全不守格式但以结论开头",
			answer: "NO. 现有证据不支持这个说法。",
			want: domain.Dossier{
				Verdict:    "NO",
				Confidence: defaultConfidence,
				Summary:    "NO. 现有证据不支持这个说法。",
			},
		},
		{
			name:    "解析不出结论",
			answer:  "我无法判断这个命题。",
			wantErr: ErrNoVerdict,
		},
		{
			name:    "空回复",
			answer:  "",
			wantErr: ErrNoVerdict,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDossier(tc.answer)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseConfidence(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name   string
		val    string
		want   float64
		wantOk bool
	}{
		{name: "小数", val: "0.8", want: 0.8, wantOk: true},
		{name: "百分号", val: " 90% ", want: 0.9, wantOk: true},
		{name: "加粗", val: "**0.75**", want: 0.75, wantOk: true},
		{name: "恰好为1", val: "1", want: 1, wantOk: true},
		{name: "零非法", val: "0", wantOk: false},
		{name: "负数非法", val: "-0.3", wantOk: false},
		{name: "超过100", val: "120%", wantOk: false},
		{name: "不是数字", val: "high", wantOk: false},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := parseConfidence(tc.val)
			assert.Equal(t, tc.wantOk, ok)
			if tc.wantOk {
				assert.InDelta(t, tc.want, got, 1e-9)
			}
		})
	}
}

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
	"errors"
	"strconv"
	"strings"

	"github.com/healthproof/healthproof/internal/dossier/internal/domain"
)

var (
	ErrNoVerdict         = errors.New("解析不出结论")
	ErrInvalidConfidence = errors.New("解析不出置信度")
)

const defaultConfidence = 0.5

// ParseDossier 从模型回复里抠出结论、置信度和摘要。
// 模型不一定守格式，所以这里宽容处理：
// 大小写、markdown 加粗、百分数都认，置信度实在没有就给默认值
func ParseDossier(answer string) (domain.Dossier, error) {
	res := domain.Dossier{Confidence: defaultConfidence}
	var summaryLines []string
	inSummary := false
	for _, line := range strings.Split(answer, "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "*#"))
		if line == "" {
			continue
		}
		key, val, found := strings.Cut(line, ":")
		if !found {
			key, val, found = strings.Cut(line, "：")
		}
		if found {
			switch strings.ToUpper(strings.TrimSpace(key)) {
			case "VERDICT":
				res.Verdict = parseVerdict(val)
				inSummary = false
				continue
			case "CONFIDENCE":
				if c, ok := parseConfidence(val); ok {
					res.Confidence = c
				}
				inSummary = false
				continue
			case "SUMMARY":
				inSummary = true
				val = strings.TrimSpace(strings.Trim(strings.TrimSpace(val), "*"))
				if val != "" {
					summaryLines = append(summaryLines, val)
				}
				continue
			}
		}
		if inSummary {
			summaryLines = append(summaryLines, line)
		}
	}
	if res.Verdict == "" {
		// 没按格式来，最后在全文里捞一把
		res.Verdict = parseVerdict(answer)
	}
	if res.Verdict == "" {
		return domain.Dossier{}, ErrNoVerdict
	}
	res.Summary = strings.Join(summaryLines, "\n")
	if res.Summary == "" {
		res.Summary = strings.TrimSpace(answer)
	}
	return res, nil
}

func parseVerdict(val string) string {
	v := strings.ToUpper(strings.TrimSpace(strings.Trim(strings.TrimSpace(val), "*")))
	switch {
	case strings.HasPrefix(v, "YES"):
		return "YES"
	case strings.HasPrefix(v, "NO"):
		return "NO"
	}
	return ""
}

func parseConfidence(val string) (float64, bool) {
	v := strings.TrimSpace(strings.Trim(strings.TrimSpace(val), "*"))
	percent := strings.HasSuffix(v, "%")
	v = strings.TrimSuffix(v, "%")
	c, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	if percent || c > 1 {
		c = c / 100
	}
	if c <= 0 || c > 1 {
		return 0, false
	}
	return c, true
}

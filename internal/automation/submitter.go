// Package automation drives a headless browser to best-effort fill and
// submit job application forms.
package automation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// Selectors whose presence marks the page as captcha-gated.
var captchaSelectors = []string{
	"iframe[src*='recaptcha']",
	"input[name='captcha']",
	"div.g-recaptcha",
}

type Submitter struct {
	headless bool
	timeout  time.Duration
	logger   *log.Logger
}

func NewSubmitter(headless bool, timeout time.Duration, logger *log.Logger) *Submitter {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &Submitter{headless: headless, timeout: timeout, logger: logger}
}

// Submit opens the listing URL, fills input fields by name from the answers
// map (booleans toggle checkboxes, everything else is stringified), clicks
// Submit, and probes for a captcha. It returns true when a captcha was
// detected and the flow should pause for a manual solve. Form-fill failures
// are swallowed; only navigation and probe failures surface.
func (s *Submitter) Submit(ctx context.Context, listingURL string, answers map[string]any) (bool, error) {
	if strings.TrimSpace(listingURL) == "" {
		return false, fmt.Errorf("empty listing url")
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", s.headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	reqCtx, reqCancel := context.WithTimeout(browserCtx, s.timeout)
	defer reqCancel()

	err := chromedp.Run(reqCtx,
		chromedp.Navigate(listingURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return false, err
	}

	fillJS, err := fillFormScript(answers)
	if err != nil {
		return false, err
	}
	fillErr := chromedp.Run(reqCtx,
		chromedp.EvaluateAsDevTools(fillJS, nil),
		chromedp.Sleep(1*time.Second),
		chromedp.EvaluateAsDevTools(clickSubmitScript, nil),
		chromedp.Sleep(1*time.Second),
	)
	if fillErr != nil && s.logger != nil {
		s.logger.Printf("submit fill skipped | url=%s error=%v", listingURL, fillErr)
	}

	var captcha bool
	if err := chromedp.Run(reqCtx, chromedp.EvaluateAsDevTools(captchaProbeScript(), &captcha)); err != nil {
		return false, err
	}

	return captcha, nil
}

func fillFormScript(answers map[string]any) (string, error) {
	b, err := json.Marshal(answers)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`(answers => {
		for (const [field, value] of Object.entries(answers)) {
			const el = document.querySelector('input[name="' + field + '"]');
			if (!el) continue;
			if (typeof value === 'boolean') {
				el.checked = value;
			} else {
				el.value = String(value);
			}
		}
	})(%s)`, string(b)), nil
}

const clickSubmitScript = `(() => {
	const candidates = Array.from(document.querySelectorAll('button, input[type="submit"], a'));
	const target = candidates.find(el => ((el.innerText || el.value || '').trim().toLowerCase() === 'submit'));
	if (target) target.click();
})()`

func captchaProbeScript() string {
	b, _ := json.Marshal(captchaSelectors)
	return fmt.Sprintf(`%s.some(sel => document.querySelector(sel) !== null)`, string(b))
}

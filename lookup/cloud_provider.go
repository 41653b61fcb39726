package lookup

import "strings"

type cloudRule struct {
	name     string
	keywords []string
}

// checked in order, first match wins
var cloudRules = []cloudRule{
	{"aws", []string{"amazon", "aws", "ec2"}},
	{"gcp", []string{"google", "gcp", "cloud platform"}},
	{"azure", []string{"microsoft", "azure"}},
	{"digitalocean", []string{"digitalocean"}},
	{"cloudflare", []string{"cloudflare"}},
	{"linode", []string{"linode"}},
	{"vultr", []string{"vultr"}},
	{"hetzner", []string{"hetzner"}},
	{"ovh", []string{"ovh"}},
}

// ClassifyCloudProvider guesses the hosting provider from network
// ownership text by case insensitive keyword search.
func ClassifyCloudProvider(isp, org, asname string) (string, bool) {
	text := strings.ToLower(strings.Join([]string{isp, org, asname}, " "))

	for _, rule := range cloudRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.name, true
			}
		}
	}

	return "", false
}

package item

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Cluster is a parsed cluster jewel
type Cluster struct {
	ItemLevel int
	Passives  int
	JewelType string // e.g. "Large Cluster Jewel"
	JewelBase string // what the small passives grant
	Mods      []string
}

func (c Cluster) String() string {
	return fmt.Sprintf("%s (ilvl %d, %d passives, %s): %s",
		c.JewelType, c.ItemLevel, c.Passives, c.JewelBase, strings.Join(c.Mods, " / "))
}

var (
	clusterTypeRe     = regexp.MustCompile(`(\w*) Cluster Jewel\n-{8}`)
	clusterLevelRe    = regexp.MustCompile(`Item Level: (\d+)`)
	clusterPassivesRe = regexp.MustCompile(`Adds (\d+) Passive Skills`)
	clusterBaseRe     = regexp.MustCompile(`Added Small Passive Skills grant: ([^\n]+)`)
)

// ParseCluster reads a cluster jewel tooltip. The modifiers are the block that
// follows the last enchant block. Text without a cluster jewel header yields
// false; missing numeric fields are left at zero.
func ParseCluster(text string) (*Cluster, bool) {
	text = Normalize(text)

	typeMatch := clusterTypeRe.FindStringSubmatch(text)
	if typeMatch == nil {
		return nil, false
	}

	c := &Cluster{
		JewelType: typeMatch[1] + " Cluster Jewel",
		ItemLevel: firstInt(clusterLevelRe, text),
		Passives:  firstInt(clusterPassivesRe, text),
	}
	if m := clusterBaseRe.FindStringSubmatch(text); m != nil {
		c.JewelBase = strings.TrimSpace(m[1])
	}

	segs := Segments(text)
	enchant := -1
	for i, s := range segs {
		if strings.Contains(s, "(enchant)") {
			enchant = i
		}
	}
	if enchant < 0 || enchant+1 >= len(segs) {
		return nil, false
	}
	c.Mods = modLines(segs[enchant+1])
	if len(c.Mods) == 0 {
		return nil, false
	}
	return c, true
}

func firstInt(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

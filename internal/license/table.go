// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package license

// entry is one known license. aliases are extra free-text names people use
// for it; urls are canonical pages other than the SPDX one.
type entry struct {
	id      string
	title   string
	url     string
	aliases []string
	urls    []string
}

// known is read-only reference data; it is indexed once at init.
var known = []entry{
	{id: "0BSD", title: "BSD Zero Clause License", url: "https://opensource.org/licenses/0BSD", aliases: []string{"zero clause bsd"}},
	{id: "AFL-3.0", title: "Academic Free License v3.0", url: "https://opensource.org/licenses/AFL-3.0"},
	{id: "AGPL-3.0-only", title: "GNU Affero General Public License v3.0 only", url: "https://www.gnu.org/licenses/agpl-3.0.html"},
	{id: "AGPL-3.0-or-later", title: "GNU Affero General Public License v3.0 or later", url: "https://www.gnu.org/licenses/agpl-3.0.html"},
	{id: "Apache-2.0", title: "Apache License 2.0", url: "https://www.apache.org/licenses/LICENSE-2.0",
		aliases: []string{"apache", "apache 2", "apache2", "apache v2", "apache license", "apache license version 2", "apache software license 2"},
		urls:    []string{"apache.org/licenses/license-2.0", "apache.org/licenses/license-2.0.txt"}},
	{id: "Artistic-2.0", title: "Artistic License 2.0", url: "https://opensource.org/licenses/Artistic-2.0", aliases: []string{"artistic 2", "perl artistic license 2"}},
	{id: "BSD-2-Clause", title: "BSD 2-Clause \"Simplified\" License", url: "https://opensource.org/licenses/BSD-2-Clause",
		aliases: []string{"simplified bsd", "bsd 2 clause", "2 clause bsd", "freebsd", "bsd 2"}},
	{id: "BSD-3-Clause", title: "BSD 3-Clause \"New\" or \"Revised\" License", url: "https://opensource.org/licenses/BSD-3-Clause",
		aliases: []string{"bsd", "new bsd", "revised bsd", "modified bsd", "bsd 3 clause", "3 clause bsd", "bsd 3", "bsd license"}},
	{id: "BSD-3-Clause-Clear", title: "BSD 3-Clause Clear License", url: "https://spdx.org/licenses/BSD-3-Clause-Clear.html", aliases: []string{"clear bsd"}},
	{id: "BSL-1.0", title: "Boost Software License 1.0", url: "https://www.boost.org/LICENSE_1_0.txt", aliases: []string{"boost", "boost software license"}},
	{id: "CC-BY-3.0", title: "Creative Commons Attribution 3.0 Unported", url: "https://creativecommons.org/licenses/by/3.0/"},
	{id: "CC-BY-4.0", title: "Creative Commons Attribution 4.0 International", url: "https://creativecommons.org/licenses/by/4.0/",
		aliases: []string{"cc by 4", "cc by", "creative commons attribution"}},
	{id: "CC-BY-NC-4.0", title: "Creative Commons Attribution Non Commercial 4.0 International", url: "https://creativecommons.org/licenses/by-nc/4.0/"},
	{id: "CC-BY-SA-4.0", title: "Creative Commons Attribution Share Alike 4.0 International", url: "https://creativecommons.org/licenses/by-sa/4.0/",
		aliases: []string{"cc by sa 4", "cc by sa"}},
	{id: "CC0-1.0", title: "Creative Commons Zero v1.0 Universal", url: "https://creativecommons.org/publicdomain/zero/1.0/",
		aliases: []string{"cc0", "cc zero", "creative commons zero", "cc0 1"}},
	{id: "CECILL-2.1", title: "CeCILL Free Software License Agreement v2.1", url: "https://spdx.org/licenses/CECILL-2.1.html", aliases: []string{"cecill"}},
	{id: "ECL-2.0", title: "Educational Community License v2.0", url: "https://opensource.org/licenses/ECL-2.0"},
	{id: "EPL-1.0", title: "Eclipse Public License 1.0", url: "https://www.eclipse.org/legal/epl-v10.html"},
	{id: "EPL-2.0", title: "Eclipse Public License 2.0", url: "https://www.eclipse.org/legal/epl-2.0/", aliases: []string{"eclipse public license", "epl"}},
	{id: "EUPL-1.2", title: "European Union Public License 1.2", url: "https://joinup.ec.europa.eu/collection/eupl/eupl-text-eupl-12", aliases: []string{"eupl"}},
	{id: "GPL-1.0-or-later", title: "GNU General Public License v1.0 or later", url: "https://www.gnu.org/licenses/old-licenses/gpl-1.0-standalone.html"},
	{id: "GPL-2.0-only", title: "GNU General Public License v2.0 only", url: "https://www.gnu.org/licenses/old-licenses/gpl-2.0.html"},
	{id: "GPL-2.0-or-later", title: "GNU General Public License v2.0 or later", url: "https://www.gnu.org/licenses/old-licenses/gpl-2.0.html"},
	{id: "GPL-3.0-only", title: "GNU General Public License v3.0 only", url: "https://www.gnu.org/licenses/gpl-3.0.html"},
	{id: "GPL-3.0-or-later", title: "GNU General Public License v3.0 or later", url: "https://www.gnu.org/licenses/gpl-3.0.html"},
	{id: "ISC", title: "ISC License", url: "https://opensource.org/licenses/ISC"},
	{id: "LGPL-2.0-or-later", title: "GNU Library General Public License v2 or later", url: "https://www.gnu.org/licenses/old-licenses/lgpl-2.0-standalone.html"},
	{id: "LGPL-2.1-only", title: "GNU Lesser General Public License v2.1 only", url: "https://www.gnu.org/licenses/old-licenses/lgpl-2.1.html"},
	{id: "LGPL-2.1-or-later", title: "GNU Lesser General Public License v2.1 or later", url: "https://www.gnu.org/licenses/old-licenses/lgpl-2.1.html"},
	{id: "LGPL-3.0-only", title: "GNU Lesser General Public License v3.0 only", url: "https://www.gnu.org/licenses/lgpl-3.0.html"},
	{id: "LGPL-3.0-or-later", title: "GNU Lesser General Public License v3.0 or later", url: "https://www.gnu.org/licenses/lgpl-3.0.html"},
	{id: "MIT", title: "MIT License", url: "https://opensource.org/licenses/MIT", aliases: []string{"expat", "mit x11", "x11 mit"}},
	{id: "MIT-0", title: "MIT No Attribution", url: "https://opensource.org/licenses/MIT-0"},
	{id: "MPL-1.1", title: "Mozilla Public License 1.1", url: "https://www.mozilla.org/MPL/1.1/"},
	{id: "MPL-2.0", title: "Mozilla Public License 2.0", url: "https://www.mozilla.org/MPL/2.0/",
		aliases: []string{"mpl", "mpl 2", "mozilla public license", "mozilla public license version 2"}},
	{id: "MS-PL", title: "Microsoft Public License", url: "https://opensource.org/licenses/MS-PL"},
	{id: "NCSA", title: "University of Illinois/NCSA Open Source License", url: "https://opensource.org/licenses/NCSA", aliases: []string{"illinois ncsa", "uiuc"}},
	{id: "OFL-1.1", title: "SIL Open Font License 1.1", url: "https://scripts.sil.org/OFL", aliases: []string{"sil ofl", "open font license"}},
	{id: "PostgreSQL", title: "PostgreSQL License", url: "https://opensource.org/licenses/PostgreSQL"},
	{id: "Python-2.0", title: "Python License 2.0", url: "https://opensource.org/licenses/Python-2.0", aliases: []string{"psf", "python software foundation license"}},
	{id: "Unlicense", title: "The Unlicense", url: "https://unlicense.org/", aliases: []string{"unlicense", "the unlicense", "public domain"}},
	{id: "UPL-1.0", title: "Universal Permissive License v1.0", url: "https://opensource.org/licenses/UPL"},
	{id: "WTFPL", title: "Do What The F*ck You Want To Public License", url: "http://www.wtfpl.net/about/"},
	{id: "Zlib", title: "zlib License", url: "https://opensource.org/licenses/Zlib", aliases: []string{"zlib libpng"}},
}

// deprecatedIDs maps retired SPDX ids onto their current form.
var deprecatedIDs = map[string]string{
	"AGPL-3.0":  "AGPL-3.0-only",
	"AGPL-3.0+": "AGPL-3.0-or-later",
	"GPL-1.0+":  "GPL-1.0-or-later",
	"GPL-2.0":   "GPL-2.0-only",
	"GPL-2.0+":  "GPL-2.0-or-later",
	"GPL-3.0":   "GPL-3.0-only",
	"GPL-3.0+":  "GPL-3.0-or-later",
	"LGPL-2.0+": "LGPL-2.0-or-later",
	"LGPL-2.1":  "LGPL-2.1-only",
	"LGPL-2.1+": "LGPL-2.1-or-later",
	"LGPL-3.0":  "LGPL-3.0-only",
	"LGPL-3.0+": "LGPL-3.0-or-later",
}

package table

// Defaults returns the built-in tables.
func Defaults() Overrides {
	return Overrides{
		Commands:     defaultCommands(),
		Environments: defaultEnvironments(),
		Symbols:      defaultSymbols(),
		Modifiers:    defaultModifiers(),
	}
}

func cmd(keyword, doc, repl string, action Action, text, math bool) Command {
	return Command{Keyword: keyword, Doc: doc, Replacement: repl, Action: action, Text: text, Math: math}
}

func defaultCommands() []Command {
	pos := Builtin(OpPositionCursor)
	env := func(name string) Action { return Param(OpEnvironment, name) }
	return []Command{
		cmd("lbl", "Insert automatic label at point", "", Builtin(OpLabel), true, true),
		cmd("ct", "Insert \\cite", "\\cite{?}", pos, true, false),
		cmd("beg", "Complete an environment name and insert template", "", Builtin(OpEnvironment), true, true),
		cmd("env", "Complete an environment name and insert template", "", Builtin(OpEnvironment), true, true),
		cmd("it", "New item in current environment", "", Builtin(OpItem), true, true),
		cmd("ite", "Insert an ITEMIZE environment template", "", env("itemize"), true, false),
		cmd("enu", "Insert an ENUMERATE environment template", "", env("enumerate"), true, false),
		cmd("des", "Insert a DESCRIPTION environment template", "", env("description"), true, false),
		cmd("equ", "Insert an EQUATION environment template", "", env("equation"), true, false),
		cmd("eqn", "Insert an EQNARRAY environment template", "", env("eqnarray"), true, false),
		cmd("ali", "Insert an ALIGN environment template", "", env("align"), true, false),
		cmd("ali*", "Insert an ALIGN* environment template", "", env("align*"), true, false),
		cmd("alit", "Insert an ALIGNAT environment template", "", env("alignat"), true, false),
		cmd("gat", "Insert a GATHER environment template", "", env("gather"), true, false),
		cmd("gat*", "Insert a GATHER* environment template", "", env("gather*"), true, false),
		cmd("mul", "Insert a MULTLINE environment template", "", env("multline"), true, false),
		cmd("mul*", "Insert a MULTLINE* environment template", "", env("multline*"), true, false),
		cmd("spl", "Insert SPLIT environment template", "", env("split"), false, true),
		cmd("arr", "Insert an ARRAY environment template", "", env("array"), false, true),
		cmd("cas", "Insert a CASES environment template", "", env("cases"), false, true),
		cmd("fg", "Insert a FIGURE environment template", "", env("figure"), true, false),
		cmd("tab", "Insert a TABLE environment template", "", env("table"), true, false),
		cmd("cen", "Insert a CENTER environment template", "", env("center"), true, false),
		cmd("vrb", "Insert a VERBATIM environment template", "", env("verbatim"), true, false),
		cmd("sn", "Insert a \\section{} statement", "\\section{?}", pos, true, false),
		cmd("ss", "Insert a \\subsection{} statement", "\\subsection{?}", pos, true, false),
		cmd("sss", "Insert a \\subsubsection{} statement", "\\subsubsection{?}", pos, true, false),
		cmd("pf", "Insert a \\paragraph{} statement", "\\paragraph{?}", pos, true, false),
		cmd("sp", "Insert a \\subparagraph{} statement", "\\subparagraph{?}", pos, true, false),
		cmd("fn", "Make a footnote", "\\footnote{?}", pos, true, false),
		cmd("emp", "Insert \\emph{}", "\\emph{?}", pos, true, false),
		cmd("inc", "Insert \\includegraphics with file name", "\\includegraphics[]{?}", Builtin(OpFile), true, false),
		cmd("lr(", "Insert a \\left( \\right) pair", "(", Builtin(OpLRPair), false, true),
		cmd("lr[", "Insert a \\left[ \\right] pair", "[", Builtin(OpLRPair), false, true),
		cmd("lr{", "Insert a \\left{ \\right} pair", "{", Builtin(OpLRPair), false, true),
		cmd("lr<", "Insert a \\left\\langle \\right\\rangle pair", "<", Builtin(OpLRPair), false, true),
		cmd("lr|", "Insert a \\left| \\right| pair", "|", Builtin(OpLRPair), false, true),
		cmd("caseeq", "Insert a = { construct",
			"\\left\\{ \n\\begin{array}{l@{\\quad:\\quad}l}\n? & \\\\\n & \n\\end{array}\\right.", pos, false, true),
		cmd("fr", "Insert \\frac{}{}", "\\frac{?}{}", pos, false, true),
		cmd("sq", "Insert \\sqrt{}", "\\sqrt{?}", pos, false, true),
		cmd("sum", "Insert \\sum_{}^{}", "\\sum_{?}^{}", pos, false, true),
		cmd("prod", "Insert \\prod_{}^{}", "\\prod_{?}^{}", pos, false, true),
		cmd("int", "Insert \\int_{}^{}", "\\int_{?}^{}", pos, false, true),
		cmd("intl", "Insert \\int\\limits_{}^{}", "\\int\\limits_{?}^{}", pos, false, true),
		cmd("lim", "Insert \\lim_{}", "\\lim_{?}", pos, false, true),
		cmd("qq", "Insert \\quad", "\\quad", NoAction, true, true),
		cmd("qqq", "Insert \\qquad", "\\qquad", NoAction, true, true),
	}
}

func defaultEnvironments() []Environment {
	return []Environment{
		{"itemize", "\\begin{itemize}\n\\item ?\n\\end{itemize}", "\\item ?"},
		{"enumerate", "\\begin{enumerate}\n\\item ?\n\\end{enumerate}", "\\item ?"},
		{"description", "\\begin{description}\n\\item[?] \n\\end{description}", "\\item[?] "},
		{"equation", "\\begin{equation}\nAUTOLABEL\n?\n\\end{equation}", ""},
		{"equation*", "\\begin{equation*}\n?\n\\end{equation*}", ""},
		{"eqnarray", "\\begin{eqnarray}\nAUTOLABEL\n? &  & \n\\end{eqnarray}", "\\\\AUTOLABEL\n? &  & "},
		{"eqnarray*", "\\begin{eqnarray*}\n? & & \n\\end{eqnarray*}", "\\\\? & & "},
		{"align", "\\begin{align}\nAUTOLABEL\n?\n\\end{align}", "\\\\AUTOLABEL\n?"},
		{"align*", "\\begin{align*}\n?\n\\end{align*}", "\\\\?"},
		{"alignat", "\\begin{alignat}{?}\nAUTOLABEL\n\n\\end{alignat}", "\\\\AUTOLABEL\n?"},
		{"gather", "\\begin{gather}\nAUTOLABEL\n?\n\\end{gather}", "\\\\AUTOLABEL\n?"},
		{"gather*", "\\begin{gather*}\n?\n\\end{gather*}", "\\\\?"},
		{"multline", "\\begin{multline}\nAUTOLABEL\n?\n\\end{multline}", "\\\\?"},
		{"multline*", "\\begin{multline*}\n?\n\\end{multline*}", "\\\\?"},
		{"split", "\\begin{split}\n?\n\\end{split}", "\\\\?"},
		{"cases", "\\begin{cases}\n? & \\\\\n\\end{cases}", "\\\\? & "},
		{"array", "\\begin{array}{?}\n & \n\\end{array}", "\\\\?"},
		{"tabular", "\\begin{tabular}{?}\n\n\\end{tabular}", "\\\\?"},
		{"figure", "\\begin{figure}[htbp]\n\\centering\n\\includegraphics[]{AUTOFILE}\n\\caption[]{AUTOLABEL ?}\n\\end{figure}", ""},
		{"table", "\\begin{table}[htbp]\n\\caption[]{AUTOLABEL ?}\n\\centering\n\n\\end{table}", ""},
		{"center", "\\begin{center}\n?\n\\end{center}", "\\\\?"},
		{"verbatim", "\\begin{verbatim}\n?\n\\end{verbatim}", ""},
		{"quote", "\\begin{quote}\nAUTOINDENT?\n\\end{quote}", ""},
		{"thebibliography", "\\begin{thebibliography}{}\n\n\\bibitem[?]{}\n\n\\end{thebibliography}", "\n\\bibitem[?]{}\n"},
	}
}

func sym(key rune, levels ...string) Symbol {
	return Symbol{Key: key, Levels: levels}
}

func defaultSymbols() []Symbol {
	return []Symbol{
		sym('a', "\\alpha"),
		sym('A', "\\forall", "\\aleph"),
		sym('b', "\\beta"),
		sym('c', "", "", "\\cos"),
		sym('C', "", "", "\\arccos"),
		sym('d', "\\delta", "\\partial"),
		sym('D', "\\Delta", "\\nabla"),
		sym('e', "\\epsilon", "\\varepsilon", "\\exp"),
		sym('E', "\\exists", "", "\\ln"),
		sym('f', "\\phi", "\\varphi"),
		sym('g', "\\gamma", "", "\\lg"),
		sym('G', "\\Gamma", "", "10^{?}"),
		sym('h', "\\eta", "\\hbar"),
		sym('i', "\\in", "\\imath"),
		sym('I', "", "\\Im"),
		sym('j', "", "\\jmath"),
		sym('k', "\\kappa"),
		sym('l', "\\lambda", "\\ell", "\\log"),
		sym('L', "\\Lambda"),
		sym('m', "\\mu"),
		sym('n', "\\nu", "", "\\ln"),
		sym('N', "\\nabla", "", "\\exp"),
		sym('o', "\\omega"),
		sym('O', "\\Omega", "\\mho"),
		sym('p', "\\pi", "\\varpi"),
		sym('P', "\\Pi"),
		sym('q', "\\theta", "\\vartheta"),
		sym('Q', "\\Theta"),
		sym('r', "\\rho", "\\varrho"),
		sym('R', "", "\\Re"),
		sym('s', "\\sigma", "\\varsigma", "\\sin"),
		sym('S', "\\Sigma", "", "\\arcsin"),
		sym('t', "\\tau", "", "\\tan"),
		sym('T', "", "", "\\arctan"),
		sym('u', "\\upsilon"),
		sym('U', "\\Upsilon"),
		sym('v', "\\vee"),
		sym('V', "\\Phi"),
		sym('w', "\\xi"),
		sym('W', "\\Xi"),
		sym('x', "\\chi"),
		sym('y', "\\psi"),
		sym('Y', "\\Psi"),
		sym('z', "\\zeta"),
		sym('0', "\\emptyset"),
		sym('8', "\\infty"),
		sym('!', "\\neg"),
		sym('^', "\\uparrow"),
		sym('&', "\\wedge"),
		sym('~', "\\approx", "\\simeq"),
		sym('_', "\\downarrow"),
		sym('+', "\\cup"),
		sym('-', "\\leftrightarrow", "\\longleftrightarrow"),
		sym('*', "\\times"),
		sym('/', "\\not"),
		sym('|', "\\mapsto", "\\longmapsto"),
		sym('\\', "\\setminus"),
		sym('=', "\\Leftrightarrow", "\\Longleftrightarrow"),
		sym('(', "\\langle"),
		sym(')', "\\rangle"),
		sym('[', "\\Leftarrow", "\\Longleftarrow"),
		sym(']', "\\Rightarrow", "\\Longrightarrow"),
		sym('{', "\\subset"),
		sym('}', "\\supset"),
		sym('<', "\\leftarrow", "\\longleftarrow", "\\min"),
		sym('>', "\\rightarrow", "\\longrightarrow", "\\max"),
		sym('\'', "\\prime"),
		sym('.', "\\cdot"),
	}
}

func defaultModifiers() []Modifier {
	accent := func(key rune, macro string, removeDot bool) Modifier {
		return Modifier{Key: key, Math: macro, Command: true, RemoveDot: removeDot}
	}
	font := func(key rune, math, text string) Modifier {
		return Modifier{Key: key, Math: math, Text: text, Command: true}
	}
	style := func(key rune, math, text string, italic bool) Modifier {
		return Modifier{Key: key, Math: math, Text: text, ItalicCorrection: italic}
	}
	return []Modifier{
		accent('.', "\\dot", true),
		accent(':', "\\ddot", true),
		accent('~', "\\tilde", true),
		accent('N', "\\widetilde", true),
		accent('^', "\\hat", true),
		accent('H', "\\widehat", true),
		accent('-', "\\bar", true),
		accent('T', "\\overline", false),
		accent('_', "\\underline", false),
		accent('{', "\\overbrace", false),
		accent('}', "\\underbrace", false),
		accent('>', "\\vec", true),
		accent('/', "\\grave", true),
		accent('\\', "\\acute", true),
		accent('v', "\\check", true),
		accent('u', "\\breve", true),
		font('m', "\\mbox", ""),
		font('c', "\\mathcal", ""),
		font('r', "\\mathrm", "\\textrm"),
		font('i', "\\mathit", "\\textit"),
		font('l', "", "\\textsl"),
		font('b', "\\mathbf", "\\textbf"),
		font('e', "\\mathem", "\\emph"),
		font('y', "\\mathtt", "\\texttt"),
		font('f', "\\mathsf", "\\textsf"),
		style('I', "", "\\itshape", true),
		style('B', "", "\\bfseries", false),
		style('0', "\\textstyle", "", false),
		style('1', "\\displaystyle", "", false),
		style('2', "\\scriptstyle", "", false),
		style('3', "\\scriptscriptstyle", "", false),
	}
}

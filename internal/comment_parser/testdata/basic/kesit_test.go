package basic

this file is generated and never parsed
